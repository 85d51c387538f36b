package scrape

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// DefaultBaseURL is the Ascension database site.
const DefaultBaseURL = "https://db.ascension.gg"

// ErrNotFound is returned when the detail endpoint has no such item.
var ErrNotFound = errors.New("scrape: item not found")

// Config configures a Client. Zero values get sensible defaults.
type Config struct {
	BaseURL   string
	UserAgent string
	Delay     time.Duration
	CacheDir  string
	Logger    *zap.Logger
}

// Client scrapes the item database. All fetches go through an on-disk
// cache and a politeness delay.
type Client struct {
	base  string
	ua    string
	delay time.Duration
	http  *http.Client
	cache *Cache
	log   *zap.Logger
}

// NewClient builds a Client from cfg.
func NewClient(cfg Config) (*Client, error) {
	c := &Client{
		base:  strings.TrimRight(cfg.BaseURL, "/"),
		ua:    cfg.UserAgent,
		delay: cfg.Delay,
		http:  &http.Client{Timeout: 30 * time.Second},
		log:   cfg.Logger,
	}
	if c.base == "" {
		c.base = DefaultBaseURL
	}
	if c.ua == "" {
		c.ua = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	if cfg.CacheDir != "" {
		cache, err := NewCache(cfg.CacheDir)
		if err != nil {
			return nil, err
		}
		c.cache = cache
	}
	return c, nil
}

func (c *Client) wait(ctx context.Context) error {
	if c.delay <= 0 {
		return nil
	}
	select {
	case <-time.After(c.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.ua)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: HTTP %d", url, resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, 4<<20))
}

var (
	itemLinkRe   = regexp.MustCompile(`\?item=(\d+)`)
	listviewIDRe = regexp.MustCompile(`"id"\s*:\s*(\d+)`)
)

type idList struct {
	ItemIDs []int `json:"item_ids"`
}

// ListItemIDs returns the item IDs on the list page for a catalog
// category, first-seen order, deduplicated. Results are cached per
// category.
func (c *Client) ListItemIDs(ctx context.Context, category string) ([]int, error) {
	cat, ok := Lookup(category)
	if !ok {
		return nil, fmt.Errorf("unknown category %q (see `tsm scrape --list`)", category)
	}

	cacheKey := "list_" + category
	var cached idList
	if c.cache != nil && c.cache.Load(cacheKey, &cached) {
		c.log.Debug("list cache hit", zap.String("category", category), zap.Int("count", len(cached.ItemIDs)))
		return cached.ItemIDs, nil
	}

	url := c.base + "/?items=" + cat.Query
	c.log.Info("scraping list page", zap.String("category", category), zap.String("url", url))
	body, err := c.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	ids := extractItemIDs(string(body))
	if c.cache != nil {
		if err := c.cache.Save(cacheKey, idList{ItemIDs: ids}); err != nil {
			c.log.Warn("cache write failed", zap.Error(err))
		}
	}
	return ids, nil
}

// extractItemIDs pulls item IDs out of a list page. Item detail links are
// authoritative; the embedded listview JSON is a second source, with tiny
// IDs dropped because the listview also carries unrelated counters.
func extractItemIDs(page string) []int {
	var ids []int
	seen := map[int]bool{}
	for _, m := range itemLinkRe.FindAllStringSubmatch(page, -1) {
		id, err := strconv.Atoi(m[1])
		if err != nil || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	for _, m := range listviewIDRe.FindAllStringSubmatch(page, -1) {
		id, err := strconv.Atoi(m[1])
		if err != nil || seen[id] || id <= 100 {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

const itemCacheKey = "items"

// Item fetches one item's metadata from the XML detail endpoint. Cached
// items are served without a network round trip; fresh results are merged
// into the shared item cache document.
func (c *Client) Item(ctx context.Context, id int) (*Item, error) {
	field := strconv.Itoa(id)
	if c.cache != nil {
		var cached map[string]Item
		if c.cache.Load(itemCacheKey, &cached) {
			if it, ok := cached[field]; ok {
				return &it, nil
			}
		}
	}

	url := fmt.Sprintf("%s/?item=%d&xml", c.base, id)
	c.log.Info("fetching item", zap.Int("id", id))
	body, err := c.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	item, err := parseItemXML(body, id)
	if err != nil {
		return nil, err
	}
	if c.cache != nil {
		if err := c.cache.MergeField(itemCacheKey, field, item); err != nil {
			c.log.Warn("cache write failed", zap.Error(err))
		}
	}
	return item, nil
}

// parseItemXML reads the detail endpoint's XML through the lenient HTML
// parser, which copes with the site's unescaped entities and mismatched
// tags better than a strict XML decoder. Tag names come back lowercased.
func parseItemXML(body []byte, id int) (*Item, error) {
	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return nil, err
	}
	node := findElement(doc, "item")
	if node == nil {
		return nil, ErrNotFound
	}

	item := &Item{ID: id}
	if n := findElement(node, "name"); n != nil {
		item.Name = textContent(n)
	}
	if item.Name == "" {
		return nil, ErrNotFound
	}
	if n := findElement(node, "class"); n != nil {
		item.Class = textContent(n)
	}
	if n := findElement(node, "subclass"); n != nil {
		item.Subclass = textContent(n)
	}
	if n := findElement(node, "inventoryslot"); n != nil {
		item.Slot = textContent(n)
	}
	if n := findElement(node, "quality"); n != nil {
		for _, a := range n.Attr {
			if a.Key == "id" {
				if q, err := strconv.Atoi(a.Val); err == nil {
					item.Quality = q
				}
			}
		}
	}
	return item, nil
}

func findElement(n *html.Node, name string) *html.Node {
	if n.Type == html.ElementNode && n.Data == name {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, name); found != nil {
			return found
		}
	}
	return nil
}

// textContent gathers an element's text. CDATA sections surface from the
// HTML parser as comment nodes, so those are unwrapped too.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		switch node.Type {
		case html.TextNode:
			b.WriteString(node.Data)
		case html.CommentNode:
			if inner, ok := strings.CutPrefix(node.Data, "[CDATA["); ok {
				b.WriteString(strings.TrimSuffix(inner, "]]"))
			}
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}
