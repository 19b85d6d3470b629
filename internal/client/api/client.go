// Package api is a typed HTTP client for the sharebin server. It keeps the
// session cookie in a cookie jar, so one Client represents one login.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

type Client struct {
	base    *url.URL
	http    *http.Client
	timeout time.Duration
}

func NewClient(serverURL string, timeout time.Duration) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(serverURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid server url %q", serverURL)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		base: base,
		http: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		timeout: timeout,
	}, nil
}

func (c *Client) endpoint(path string) string {
	return c.base.String() + path
}

// do sends the request and decodes a JSON reply into out (when non-nil).
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	return c.do(ctx, method, path, body, "application/json", out)
}

func decodeError(resp *http.Response) error {
	e := &Error{Status: resp.StatusCode}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(e); err != nil || e.Code == "" {
		e.Code = strings.ToLower(strings.ReplaceAll(http.StatusText(resp.StatusCode), " ", "_"))
	}
	return e
}

func (c *Client) Register(ctx context.Context, name, email, password string) (*User, error) {
	var u User
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", map[string]string{
		"name": name, "email": email, "password": password,
	}, &u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*Identity, error) {
	var id Identity
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email": email, "password": password,
	}, &id)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, "", nil)
}

// Session returns the identity of the current login, or ErrUnauthorized.
func (c *Client) Session(ctx context.Context) (*Identity, error) {
	var id Identity
	if err := c.do(ctx, http.MethodGet, "/api/auth/session", nil, "", &id); err != nil {
		return nil, err
	}
	return &id, nil
}

// UploadFile streams r as a multipart upload named name.
func (c *Client) UploadFile(ctx context.Context, name string, r io.Reader, opts SharingOptions) (*Artifact, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		err := func() error {
			if opts.ExpiresIn != "" {
				if err := mw.WriteField("expiresIn", opts.ExpiresIn); err != nil {
					return err
				}
			}
			if opts.ViewLimit != "" {
				if err := mw.WriteField("viewLimit", opts.ViewLimit); err != nil {
					return err
				}
			}
			fw, err := mw.CreateFormFile("file", name)
			if err != nil {
				return err
			}
			if _, err := io.Copy(fw, r); err != nil {
				return err
			}
			return mw.Close()
		}()
		pw.CloseWithError(err)
	}()

	var a Artifact
	if err := c.do(ctx, http.MethodPost, "/api/files", pr, mw.FormDataContentType(), &a); err != nil {
		pr.CloseWithError(err)
		return nil, err
	}
	return &a, nil
}

func (c *Client) CreateNote(ctx context.Context, title, content string, opts SharingOptions) (*Artifact, error) {
	var a Artifact
	err := c.doJSON(ctx, http.MethodPost, "/api/notes", map[string]string{
		"title": title, "content": content, "expiresIn": opts.ExpiresIn, "viewLimit": opts.ViewLimit,
	}, &a)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ReadNote opens a note; this counts as one view.
func (c *Client) ReadNote(ctx context.Context, id string) (*Artifact, error) {
	var a Artifact
	if err := c.do(ctx, http.MethodGet, "/api/notes/"+url.PathEscape(id), nil, "", &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// ReadFile opens a file; this counts as one view and yields a download URL.
func (c *Client) ReadFile(ctx context.Context, id string) (*Artifact, error) {
	var a Artifact
	if err := c.do(ctx, http.MethodGet, "/api/files/"+url.PathEscape(id), nil, "", &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Download fetches the payload behind a download URL from ReadFile and
// copies it to w.
func (c *Client) Download(ctx context.Context, downloadURL string, w io.Writer) (int64, error) {
	if downloadURL == "" {
		return 0, ErrUnexpectedURL
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return 0, decodeError(resp)
	}
	return io.Copy(w, resp.Body)
}

// List returns the caller's files or notes; kind is "files" or "notes".
func (c *Client) List(ctx context.Context, kind string, all bool) ([]Artifact, error) {
	if kind != "files" && kind != "notes" {
		return nil, fmt.Errorf("unknown kind %q", kind)
	}
	path := "/api/" + kind
	if all {
		path += "?scope=all"
	}
	var out []Artifact
	if err := c.do(ctx, http.MethodGet, path, nil, "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a file, note or short URL; kind is "files", "notes" or
// "urls".
func (c *Client) Delete(ctx context.Context, kind, id string) error {
	switch kind {
	case "files", "notes", "urls":
	default:
		return fmt.Errorf("unknown kind %q", kind)
	}
	return c.do(ctx, http.MethodDelete, "/api/"+kind+"/"+url.PathEscape(id), nil, "", nil)
}

func (c *Client) Shorten(ctx context.Context, target string) (*ShortURL, error) {
	var u ShortURL
	if err := c.doJSON(ctx, http.MethodPost, "/api/urls", map[string]string{"url": target}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) ListShortURLs(ctx context.Context, all bool) ([]ShortURL, error) {
	path := "/api/urls"
	if all {
		path += "?scope=all"
	}
	var out []ShortURL
	if err := c.do(ctx, http.MethodGet, path, nil, "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Users(ctx context.Context) ([]User, error) {
	var out []User
	if err := c.do(ctx, http.MethodGet, "/api/users", nil, "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateUser changes name and/or role; empty strings leave a field alone.
func (c *Client) UpdateUser(ctx context.Context, id, name, role string) (*User, error) {
	in := map[string]string{}
	if name != "" {
		in["name"] = name
	}
	if role != "" {
		in["role"] = role
	}
	if len(in) == 0 {
		return nil, errors.New("nothing to update")
	}
	var u User
	if err := c.doJSON(ctx, http.MethodPatch, "/api/users/"+url.PathEscape(id), in, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
