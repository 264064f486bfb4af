// Package logodetect ranks logo candidates found in a page's markup. The scan
// is a pure function of the parsed document so it can be tested without any
// network access.
package logodetect

import (
	"bytes"
	"io"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
)

// Candidate is an image reference paired with its ranking priority. It exists
// only while one page's candidates are being ordered.
type Candidate struct {
	Ref      string
	Priority int
}

const (
	// Tuned empirically; changing these changes which image wins on real
	// pages, so they are kept as-is.
	priorityIconLink    = 1
	priorityHeaderImage = 3
	imgAttrScore        = 2
	imgScoreBonus       = 2
)

// imgAttrs are the <img> attributes inspected for a "logo" marker.
var imgAttrs = [...]string{"class", "id", "alt", "src"}

// FromHTML parses a fetched page body and returns its ranked candidates. The
// Content-Type header, when present, drives charset detection.
func FromHTML(body []byte, contentType string) ([]Candidate, error) {
	var r io.Reader = bytes.NewReader(body)
	if cr, err := charset.NewReader(r, contentType); err == nil {
		r = cr
	} else {
		r = bytes.NewReader(body)
	}
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	return Candidates(doc), nil
}

// Candidates scans the document once and returns image references ordered by
// priority, highest first. Ties keep discovery order.
//
// Discovery rules:
//  1. <link> elements whose rel contains "icon" or "logo" rank lowest.
//  2. <img> elements score 2 per class/id/alt/src attribute containing
//     "logo", plus a bonus of 2, so any logo-marked image outranks a bare
//     icon link.
//  3. Only when nothing else qualified, the first <img> inside <header> is a
//     weak fallback.
func Candidates(doc *goquery.Document) []Candidate {
	var out []Candidate

	doc.Find("link").Each(func(_ int, s *goquery.Selection) {
		rel := strings.ToLower(s.AttrOr("rel", ""))
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" {
			return
		}
		if strings.Contains(rel, "icon") || strings.Contains(rel, "logo") {
			out = append(out, Candidate{Ref: href, Priority: priorityIconLink})
		}
	})

	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		score := 0
		for _, attr := range imgAttrs {
			if strings.Contains(strings.ToLower(s.AttrOr(attr, "")), "logo") {
				score += imgAttrScore
			}
		}
		src := strings.TrimSpace(s.AttrOr("src", ""))
		if score > 0 && src != "" {
			out = append(out, Candidate{Ref: src, Priority: score + imgScoreBonus})
		}
	})

	if len(out) == 0 {
		src := strings.TrimSpace(doc.Find("header img").First().AttrOr("src", ""))
		if src != "" {
			out = append(out, Candidate{Ref: src, Priority: priorityHeaderImage})
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority > out[j].Priority })
	return out
}
