// Package placeholder serves the employee directory from a remote JSON
// placeholder API instead of the local document. The remote side owns the
// records; ids and persistence follow whatever it returns.
package placeholder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"staff_portal/internal/directory"
	sl "staff_portal/internal/lib/logger/sl"
	"staff_portal/internal/models"

	"github.com/go-chi/render"
)

type Client struct {
	log     *slog.Logger
	baseURL string
	http    *http.Client
}

func New(log *slog.Logger, baseURL string, timeout time.Duration) *Client {
	return &Client{
		log:     log,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type remoteUser struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Position   string `json:"position"`
	Salary     string `json:"salary"`
	Company    struct {
		Name        string `json:"name"`
		CatchPhrase string `json:"catchPhrase"`
	} `json:"company"`
}

func (u remoteUser) employee() models.Employee {
	e := models.Employee{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Department: u.Department,
		Position:   u.Position,
		Salary:     u.Salary,
	}

	if e.Department == "" {
		e.Department = u.Company.Name
	}
	if e.Position == "" {
		e.Position = u.Company.CatchPhrase
	}

	return e
}

func (c *Client) List(ctx context.Context) ([]models.Employee, error) {
	const op = "placeholder.List"

	var users []remoteUser
	if err := c.do(ctx, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]models.Employee, 0, len(users))
	for _, u := range users {
		out = append(out, u.employee())
	}

	return out, nil
}

func (c *Client) Create(ctx context.Context, fields models.EmployeeFields) (models.Employee, error) {
	const op = "placeholder.Create"

	var u remoteUser
	if err := c.do(ctx, http.MethodPost, "/users", fields, &u); err != nil {
		return models.Employee{}, fmt.Errorf("%s: %w", op, err)
	}

	return u.employee(), nil
}

// Update sends only the non-empty fields as a PATCH, which keeps the
// empty-means-unchanged policy of the local directory.
func (c *Client) Update(ctx context.Context, id int64, fields models.EmployeeFields) (models.Employee, error) {
	const op = "placeholder.Update"

	patch := make(map[string]string)
	for k, v := range map[string]string{
		"name":       fields.Name,
		"email":      fields.Email,
		"department": fields.Department,
		"position":   fields.Position,
		"salary":     fields.Salary,
	} {
		if v != "" {
			patch[k] = v
		}
	}

	var u remoteUser
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/users/%d", id), patch, &u); err != nil {
		return models.Employee{}, fmt.Errorf("%s: %w", op, err)
	}

	return u.employee(), nil
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	const op = "placeholder.Delete"

	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("placeholder request failed", slog.String("method", method), slog.String("path", path), sl.Err(err))
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return directory.ErrEmployeeNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d from %s %s", resp.StatusCode, method, path)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	return render.DecodeJSON(resp.Body, out)
}
