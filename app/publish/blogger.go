package publish

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
)

// Draft is the input to a publish call. Body is rewritten HTML; the
// adapter appends attribution and the optional image itself so a draft
// is created fully formed or not at all.
type Draft struct {
	Title           string
	Body            string
	MetaDescription string
	Labels          []string
	SourceURL       string
	SourceTitle     string
	ImageURL        string
}

// Result reports a successful draft creation.
type Result struct {
	DraftID       string
	ImageIncluded bool
}

// Publisher creates drafts through a Blogger-style REST API.
type Publisher struct {
	baseURL    string
	blogID     string
	token      string
	httpClient *http.Client
	userAgent  string
}

func NewPublisher(baseURL, blogID, token, userAgent string, timeout time.Duration) *Publisher {
	return &Publisher{
		baseURL: strings.TrimRight(baseURL, "/"),
		blogID:  blogID,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent: userAgent,
	}
}

type postPayload struct {
	Kind    string   `json:"kind"`
	Blog    blogRef  `json:"blog"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Labels  []string `json:"labels,omitempty"`
}

type blogRef struct {
	ID string `json:"id"`
}

type postResponse struct {
	ID string `json:"id"`
}

// Publish creates a draft post. The image is included only when it
// passes a reachability probe; failure to probe drops the image, never
// the article.
func (p *Publisher) Publish(ctx context.Context, d Draft) (*Result, error) {
	if d.Title == "" || strings.TrimSpace(d.Body) == "" {
		return nil, &Error{Kind: KindPayload, Msg: "draft is missing title or body"}
	}
	if p.blogID == "" || p.token == "" {
		return nil, &Error{Kind: KindAuth, Msg: "publisher misconfigured"}
	}

	imageIncluded := false
	content := d.Body
	if d.ImageURL != "" {
		if p.imageUsable(ctx, d.ImageURL) {
			content = fmt.Sprintf(`<img src=%q alt=%q style="max-width:100%%;height:auto;"><br>%s`, d.ImageURL, d.Title, content)
			imageIncluded = true
		} else {
			slog.Debug("Image failed validity check, publishing without it", "image", d.ImageURL)
		}
	}
	content += fmt.Sprintf(`<br><br><small>Source: <a href=%q>%s</a></small>`, d.SourceURL, d.SourceTitle)

	// Blogger has no API field for a per-post search description, so it
	// rides along as a comment the operator can copy into the editor.
	if d.MetaDescription != "" {
		content = fmt.Sprintf("<!-- search-description: %s -->\n%s", d.MetaDescription, content)
	}

	payload := postPayload{
		Kind:    "blogger#post",
		Blog:    blogRef{ID: p.blogID},
		Title:   d.Title,
		Content: content,
		Labels:  d.Labels,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &Error{Kind: KindPayload, Msg: fmt.Sprintf("marshal post: %v", err)}
	}

	url := fmt.Sprintf("%s/blogs/%s/posts?isDraft=true", p.baseURL, p.blogID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Kind: KindOther, Msg: fmt.Sprintf("new request: %v", err)}
	}
	req.Header.Set("Authorization", "Bearer "+p.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindOther, Msg: fmt.Sprintf("send request: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &Error{
			Kind:   kindForStatus(resp.StatusCode),
			Status: resp.StatusCode,
			Msg:    strings.TrimSpace(string(detail)),
		}
	}

	var parsed postResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &Error{Kind: KindOther, Msg: fmt.Sprintf("decode response: %v", err)}
	}
	if parsed.ID == "" {
		return nil, &Error{Kind: KindOther, Msg: "response carried no post id"}
	}

	return &Result{DraftID: parsed.ID, ImageIncluded: imageIncluded}, nil
}

// imageUsable probes the image URL: reachable and non-empty.
func (p *Publisher) imageUsable(ctx context.Context, imageURL string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, imageURL, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 300 && resp.ContentLength != 0
}
