package domain

import (
	feedDomain "github.com/reshetovitsme/bump-notifier/internal/modules/feed/domain"
)

const (
	AccentColor      = 3447003
	SummaryFieldName = "Summary"
)

// Field is a labelled block of a rich message
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Notification is the platform-neutral rich message announcing a feed entry
type Notification struct {
	Color  int     `json:"color"`
	Title  string  `json:"title"`
	URL    string  `json:"url"`
	Fields []Field `json:"fields"`
}

// NewNotification builds the announcement for entry. Values are copied verbatim.
func NewNotification(entry *feedDomain.Entry) Notification {
	return Notification{
		Color: AccentColor,
		Title: entry.Title,
		URL:   entry.Link,
		Fields: []Field{
			{Name: SummaryFieldName, Value: entry.Summary},
		},
	}
}
