package model

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// PlatformContent is the tagged union of per-platform content shapes. The
// detector and sanitizer only ever see the plain text produced by
// ExtractPlainText; formatting stays the platform's concern.
type PlatformContent interface {
	platformContent()
}

// Email is subject-plus-body content.
type Email struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Thread is a sequence of short posts published as one unit.
type Thread struct {
	Tweets []string `json:"tweets"`
}

// SingleText is a single post with optional hashtags.
type SingleText struct {
	Text     string   `json:"text"`
	Hashtags []string `json:"hashtags,omitempty"`
}

// TitledBody is long-form content with a title, e.g. a blog post.
type TitledBody struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (Email) platformContent()      {}
func (Thread) platformContent()     {}
func (SingleText) platformContent() {}
func (TitledBody) platformContent() {}

// markupHint is a cheap check for markup in long-form bodies so plain prose
// containing "<" is not run through the HTML parser.
var markupHint = regexp.MustCompile(`<[a-zA-Z!/]`)

// ExtractPlainText flattens a content piece into the scannable text the
// detector operates on. Long-form bodies that look like HTML are reduced to
// their visible text first.
func ExtractPlainText(content PlatformContent) string {
	switch c := content.(type) {
	case Email:
		return strings.TrimSpace(c.Subject + "\n\n" + c.Body)
	case Thread:
		return strings.TrimSpace(strings.Join(c.Tweets, " "))
	case SingleText:
		if len(c.Hashtags) == 0 {
			return strings.TrimSpace(c.Text)
		}
		return strings.TrimSpace(c.Text + " " + strings.Join(c.Hashtags, " "))
	case TitledBody:
		body := c.Body
		if markupHint.MatchString(body) {
			body = stripMarkup(body)
		}
		return strings.TrimSpace(c.Title + "\n\n" + body)
	case nil:
		return ""
	default:
		return ""
	}
}

// stripMarkup extracts visible text from HTML, skipping script/style subtrees.
func stripMarkup(raw string) string {
	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return raw
	}

	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				if buf.Len() > 0 {
					buf.WriteString(" ")
				}
				buf.WriteString(text)
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return buf.String()
}
