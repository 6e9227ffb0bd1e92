package services

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"scamshield/internal/domain/models"
)

// maxSnapshotElements caps forms, inputs and images collected from one page
const maxSnapshotElements = 500

// ParseHTMLSnapshot builds a PageSnapshot from raw page markup, for clients
// that upload the document instead of extracting it themselves
func ParseHTMLSnapshot(pageURL, rawHTML string) (*models.PageSnapshot, error) {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	snap := &models.PageSnapshot{URL: pageURL}
	var text strings.Builder
	traverseSnapshot(doc, snap, &text)
	snap.Text = strings.Join(strings.Fields(text.String()), " ")

	return snap, nil
}

// traverseSnapshot recursively walks the HTML tree
func traverseSnapshot(n *html.Node, snap *models.PageSnapshot, text *strings.Builder) {
	switch n.Type {
	case html.ElementNode:
		switch n.Data {
		case "script", "style", "noscript", "template":
			return
		case "form":
			if len(snap.Forms) < maxSnapshotElements {
				snap.Forms = append(snap.Forms, models.PageForm{
					Action: attr(n, "action"),
					Method: strings.ToLower(attr(n, "method")),
				})
			}
		case "input":
			if len(snap.Inputs) < maxSnapshotElements {
				typ := strings.ToLower(attr(n, "type"))
				if typ == "" {
					typ = "text"
				}
				snap.Inputs = append(snap.Inputs, models.PageInput{
					Type:        typ,
					Name:        attr(n, "name"),
					Placeholder: attr(n, "placeholder"),
				})
			}
		case "img":
			if len(snap.Images) < maxSnapshotElements {
				snap.Images = append(snap.Images, models.PageImage{
					Src: attr(n, "src"),
					Alt: attr(n, "alt"),
				})
			}
		}
	case html.TextNode:
		text.WriteString(n.Data)
		text.WriteByte(' ')
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		traverseSnapshot(c, snap, text)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return strings.TrimSpace(a.Val)
		}
	}
	return ""
}
