package dashboard

import (
	"fmt"
	"io/fs"
	"testing/fstest"
)

func makeSummary(durationMs, count, avg, p95, failRate, maxVUs float64) []byte {
	return []byte(fmt.Sprintf(`{
  "state": {"testRunDurationMs": %v},
  "metrics": {
    "http_reqs": {"type": "counter", "values": {"count": %v}},
    "http_req_duration": {"type": "trend", "values": {"avg": %v, "p(95)": %v}},
    "http_req_failed": {"type": "rate", "values": {"rate": %v}},
    "vus": {"type": "gauge", "values": {"max": %v}}
  }
}`, durationMs, count, avg, p95, failRate, maxVUs))
}

func file(data []byte) *fstest.MapFile {
	return &fstest.MapFile{Data: data, Mode: 0644}
}

// brokenDirFS fails to list one directory while still reporting it as one.
type brokenDirFS struct {
	fstest.MapFS
	broken string
}

func (b brokenDirFS) ReadDir(name string) ([]fs.DirEntry, error) {
	if name == b.broken {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrPermission}
	}
	return b.MapFS.ReadDir(name)
}
