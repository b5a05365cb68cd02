package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/wedding-seating/go-seating-backend/internal/seating/domain"
)

type apiClient struct {
	base string
	http *http.Client
}

func newAPIClient(base string) *apiClient {
	return &apiClient{
		base: base,
		http: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *apiClient) fetchProject(ctx context.Context, projectID string) (domain.Project, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/api/projects/"+projectID, nil)
	if err != nil {
		return domain.Project{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Project{}, fmt.Errorf("fetch project: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Project{}, fmt.Errorf("fetch project: server returned %s", resp.Status)
	}

	var p domain.Project
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return domain.Project{}, fmt.Errorf("decode project: %w", err)
	}
	return p, nil
}

func (c *apiClient) putProject(ctx context.Context, projectID string, p domain.Project) (string, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.base+"/api/projects/"+projectID, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("save project: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("save project: server returned %s: %s", resp.Status, msg)
	}

	var out struct {
		OK        bool   `json:"ok"`
		UpdatedAt string `json:"updatedAt"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode save response: %w", err)
	}
	return out.UpdatedAt, nil
}
