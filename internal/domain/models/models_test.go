package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBlogPost_Visibility(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Hour)

	tests := []struct {
		name    string
		post    BlogPost
		due     bool
		visible bool
	}{
		{"scheduled in the past", BlogPost{Status: PostStatusScheduled, PublishedAt: &past}, true, false},
		{"scheduled in the future", BlogPost{Status: PostStatusScheduled, PublishedAt: &future}, false, false},
		{"published in the past", BlogPost{Status: PostStatusPublished, PublishedAt: &past}, false, true},
		{"published with future date", BlogPost{Status: PostStatusPublished, PublishedAt: &future}, false, false},
		{"published exactly now", BlogPost{Status: PostStatusPublished, PublishedAt: &now}, false, true},
		{"draft", BlogPost{Status: PostStatusDraft, PublishedAt: &past}, false, false},
		{"scheduled without date", BlogPost{Status: PostStatusScheduled}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.due, tt.post.IsDue(now))
			assert.Equal(t, tt.visible, tt.post.IsVisible(now))
		})
	}
}

func TestParseSortOrder(t *testing.T) {
	assert.Equal(t, SortPriceAsc, ParseSortOrder("precio-asc"))
	assert.Equal(t, SortPriceDesc, ParseSortOrder("precio-desc"))
	assert.Equal(t, SortNewest, ParseSortOrder(""))
	assert.Equal(t, SortNewest, ParseSortOrder("cualquiera"))
}

func TestEnums(t *testing.T) {
	assert.True(t, OperationSale.Valid())
	assert.False(t, Operation("permuta").Valid())
	assert.True(t, PropertyTypeLot.Valid())
	assert.False(t, PropertyType("finca").Valid())
	assert.True(t, AvailabilitySold.Valid())
	assert.False(t, Availability("disponible").Valid())
	assert.False(t, PostStatus("deleted").Valid())
}
