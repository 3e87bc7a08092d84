package ocr

import (
	"fmt"
	"strings"
)

// ExtractText flattens a raw engine result into newline-joined text. Nodes
// that do not match the expected shape are stringified instead of failing the
// request: tolerating malformed engine output is deliberate policy here.
func ExtractText(shape Shape, raw any) string {
	var lines []string
	switch shape {
	case ShapeNested:
		lines = nestedLines(raw)
	default:
		lines = flatLines(raw)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// nestedLines walks pages -> items -> (region, (text, confidence)).
func nestedLines(raw any) []string {
	pages, ok := raw.([]any)
	if !ok {
		return []string{fmt.Sprint(raw)}
	}
	var lines []string
	for _, page := range pages {
		items, ok := page.([]any)
		if !ok {
			lines = append(lines, fmt.Sprint(page))
			continue
		}
		for _, item := range items {
			lines = append(lines, nestedItemText(item))
		}
	}
	return lines
}

func nestedItemText(item any) string {
	fields, ok := item.([]any)
	if !ok || len(fields) < 2 {
		return fmt.Sprint(item)
	}
	pair, ok := fields[1].([]any)
	if !ok || len(pair) == 0 {
		return fmt.Sprint(item)
	}
	text, ok := pair[0].(string)
	if !ok {
		return fmt.Sprint(item)
	}
	return text
}

// flatLines walks items -> (region, text, confidence).
func flatLines(raw any) []string {
	items, ok := raw.([]any)
	if !ok {
		return []string{fmt.Sprint(raw)}
	}
	var lines []string
	for _, item := range items {
		lines = append(lines, flatItemText(item))
	}
	return lines
}

func flatItemText(item any) string {
	fields, ok := item.([]any)
	if !ok || len(fields) < 2 {
		return fmt.Sprint(item)
	}
	text, ok := fields[1].(string)
	if !ok {
		return fmt.Sprint(item)
	}
	return text
}

// FlatItemsFromText builds a flat raw result from plain recognized text, one
// item per non-empty line. Remote engines use it when the model answers with
// text instead of the requested JSON.
func FlatItemsFromText(text string) []any {
	var items []any
	for _, line := range strings.Split(text, "\n") {
		if s := strings.TrimSpace(line); s != "" {
			items = append(items, []any{nil, s})
		}
	}
	return items
}
