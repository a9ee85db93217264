package object_storage

import (
	"fmt"
	"io"
	"net/http"

	"github.com/Tureright/performance-test-k6/config"
)

type nexusStorage struct {
	nexusURL   string
	username   string
	password   string
	httpClient *http.Client
}

func NewNexusStorage(c *config.DashboardConfig) nexusStorage {
	ns := new(nexusStorage)
	o := c.ObjectStorage
	ns.nexusURL = o.Url
	ns.username = o.User
	ns.password = o.Password
	ns.httpClient = c.HTTPClient
	if o.RequireProxy {
		ns.httpClient = c.HTTPProxyClient
	}
	return *ns
}

func (n nexusStorage) GetUrl(filename string) string {
	return fmt.Sprintf("%s/%s", n.nexusURL, filename)
}

func (n nexusStorage) Upload(filename string, content io.ReadCloser) error {
	defer content.Close()

	url := n.GetUrl(filename)
	req, err := http.NewRequest("PUT", url, content)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "text/html; charset=utf-8")
	req.SetBasicAuth(n.username, n.password)
	resp, err := n.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusCreated || resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return fmt.Errorf("Bad response from Nexus: %s", resp.Status)
}
