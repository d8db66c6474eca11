package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/previoip/srcds-resource-manager/internal/domain"
)

// maxCollectionDepth bounds collection nesting.
const maxCollectionDepth = 4

var ErrWorkshopRef = errors.New("fetch: not a workshop id or url")

// ParseWorkshopIDs returns the item ids named by ref: either a bare numeric
// id or a URL carrying one or more ?id= parameters.
func ParseWorkshopIDs(ref string) ([]string, error) {
	ref = strings.TrimSpace(ref)
	if isNumeric(ref) {
		return []string{ref}, nil
	}

	u, err := url.Parse(ref)
	if err != nil || u.RawQuery == "" {
		return nil, fmt.Errorf("%w: %q", ErrWorkshopRef, ref)
	}

	var ids []string
	for _, id := range u.Query()["id"] {
		if isNumeric(id) {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: missing id in %q", ErrWorkshopRef, ref)
	}
	return ids, nil
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	_, err := strconv.ParseUint(s, 10, 64)
	return err == nil
}

// flexBool decodes true/false as well as 0/1.
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	switch strings.Trim(string(data), `"`) {
	case "true", "1":
		*b = true
	case "false", "0", "null", "":
		*b = false
	default:
		return fmt.Errorf("invalid boolean %s", data)
	}
	return nil
}

type workshopItem struct {
	PublishedFileID  string   `json:"publishedfileid"`
	Result           flexBool `json:"result"`
	Title            string   `json:"title"`
	Filename         string   `json:"filename"`
	FileURL          string   `json:"file_url"`
	PreviewURL       string   `json:"preview_url"`
	ShowSubscribeAll bool     `json:"show_subscribe_all"`
	CanSubscribe     bool     `json:"can_subscribe"`
	Children         []struct {
		PublishedFileID string `json:"publishedfileid"`
	} `json:"children"`
}

func (w workshopItem) isCollection() bool {
	return w.ShowSubscribeAll && !w.CanSubscribe
}

// Workshop downloads the files of every item behind ref into dir, following
// collections. Errors on individual files do not stop the rest; they are
// joined into the returned error.
func (c *Client) Workshop(ctx context.Context, ref, dir string) ([]domain.DownloadResult, error) {
	ids, err := ParseWorkshopIDs(ref)
	if err != nil {
		return nil, err
	}

	w := &workshopWalk{client: c, dir: dir, seen: make(map[string]bool)}
	for _, id := range ids {
		if err := w.item(ctx, id, 0); err != nil && ctx.Err() != nil {
			return w.results, ctx.Err()
		}
	}
	return w.results, errors.Join(w.errs...)
}

type workshopWalk struct {
	client  *Client
	dir     string
	seen    map[string]bool
	results []domain.DownloadResult
	errs    []error
}

func (w *workshopWalk) item(ctx context.Context, id string, depth int) error {
	if w.seen[id] {
		return nil
	}
	w.seen[id] = true

	items, err := w.client.details(ctx, id)
	if err != nil {
		w.errs = append(w.errs, fmt.Errorf("workshop %s: %w", id, err))
		return err
	}

	for _, it := range items {
		if !it.Result {
			w.errs = append(w.errs, fmt.Errorf("workshop %s: no result", id))
			continue
		}

		if it.isCollection() {
			if depth >= maxCollectionDepth {
				w.errs = append(w.errs, fmt.Errorf("workshop %s: collection nested too deep", id))
				continue
			}
			w.client.logger.Info("fetch: workshop %s is a collection of %d items", id, len(it.Children))
			for _, child := range it.Children {
				if child.PublishedFileID == "" {
					continue
				}
				if err := w.item(ctx, child.PublishedFileID, depth+1); err != nil && ctx.Err() != nil {
					return err
				}
			}
			continue
		}

		w.client.logger.Info("fetch: workshop %s: %s", id, it.Title)
		for _, u := range []string{it.FileURL, it.PreviewURL} {
			if u == "" {
				continue
			}
			res, err := w.client.Download(ctx, u, w.dir)
			if err != nil {
				w.errs = append(w.errs, fmt.Errorf("workshop %s: %w", id, err))
				if ctx.Err() != nil {
					return err
				}
				continue
			}
			w.results = append(w.results, res)
		}
	}
	return nil
}

// details asks the workshop API about one published file id.
func (c *Client) details(ctx context.Context, id string) ([]workshopItem, error) {
	header := http.Header{"Content-Type": []string{"application/json"}}

	resp, err := c.do(ctx, http.MethodPost, c.workshopAPI, []byte("["+id+"]"), header)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("read workshop details: %w", err)
	}

	var items []workshopItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode workshop details: %w", err)
	}
	return items, nil
}
