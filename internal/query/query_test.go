package query

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "nestify/internal/errors"
)

func TestParsePage(t *testing.T) {
	tests := []struct {
		name      string
		page      string
		limit     string
		want      Page
		wantError bool
	}{
		{"defaults", "", "", Page{Page: 1, Limit: 10}, false},
		{"explicit", "3", "25", Page{Page: 3, Limit: 25}, false},
		{"floored", "0", "-4", Page{Page: 1, Limit: 1}, false},
		{"capped", "2", "1000", Page{Page: 2, Limit: MaxLimit}, false},
		{"spaces", " 2 ", " 5", Page{Page: 2, Limit: 5}, false},
		{"bad page", "two", "", Page{}, true},
		{"bad limit", "", "1.5", Page{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePage(tt.page, tt.limit)
			if tt.wantError {
				require.Error(t, err)
				assert.True(t, errors.Is(err, apperrors.ErrInvalidQuery))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPage_Offset(t *testing.T) {
	assert.Equal(t, 0, Page{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 40, Page{Page: 5, Limit: 10}.Offset())
}

func TestNewPagination_PagesProperty(t *testing.T) {
	for total := int64(0); total <= 57; total++ {
		for limit := 1; limit <= 12; limit++ {
			p := NewPagination(Page{Page: 1, Limit: limit}, total)

			want := int((total + int64(limit) - 1) / int64(limit))
			if want < 1 {
				want = 1
			}
			assert.Equal(t, want, p.Pages, "total=%d limit=%d", total, limit)
			assert.Equal(t, total, p.Total)
		}
	}
}

func TestParsePriceRange(t *testing.T) {
	d := decimal.RequireFromString

	tests := []struct {
		name    string
		input   string
		wantNil bool
		wantMin string
		wantMax string
		wantErr bool
	}{
		{name: "empty", input: "", wantNil: true},
		{name: "bounded", input: "1000-2000", wantMin: "1000", wantMax: "2000"},
		{name: "bounded with spaces", input: " 1000 - 2000 ", wantMin: "1000", wantMax: "2000"},
		{name: "decimal bounds", input: "999.5-1000.25", wantMin: "999.5", wantMax: "1000.25"},
		{name: "open ended", input: "5000+", wantMin: "5000"},
		{name: "equal bounds", input: "10-10", wantMin: "10", wantMax: "10"},
		{name: "letters", input: "abc", wantErr: true},
		{name: "letters in bound", input: "10-abc", wantErr: true},
		{name: "min above max", input: "2000-1000", wantErr: true},
		{name: "missing max", input: "1000-", wantErr: true},
		{name: "missing min", input: "-1000", wantErr: true},
		{name: "negative open", input: "-5+", wantErr: true},
		{name: "bare plus", input: "+", wantErr: true},
		{name: "three parts", input: "1-2-3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePriceRange(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, apperrors.ErrInvalidQuery))
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, d(tt.wantMin).Equal(got.Min))
			if tt.wantMax == "" {
				assert.Nil(t, got.Max)
			} else {
				require.NotNil(t, got.Max)
				assert.True(t, d(tt.wantMax).Equal(*got.Max))
			}
		})
	}
}

func TestPriceRange_Contains(t *testing.T) {
	bounded, err := ParsePriceRange("1000-2000")
	require.NoError(t, err)
	open, err := ParsePriceRange("5000+")
	require.NoError(t, err)

	assert.True(t, bounded.Contains(decimal.NewFromInt(1000)))
	assert.True(t, bounded.Contains(decimal.NewFromInt(2000)))
	assert.False(t, bounded.Contains(decimal.NewFromInt(2001)))
	assert.False(t, bounded.Contains(decimal.NewFromInt(999)))
	assert.True(t, open.Contains(decimal.NewFromInt(1_000_000)))
	assert.False(t, open.Contains(decimal.NewFromInt(4999)))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, "plain", EscapeLike("plain"))
	assert.Equal(t, "100!%", EscapeLike("100%"))
	assert.Equal(t, "a!_b", EscapeLike("a_b"))
	assert.Equal(t, "wow!!", EscapeLike("wow!"))
	// Regex syntax carries no meaning in LIKE and passes through.
	assert.Equal(t, "a.*b(", EscapeLike("a.*b("))
	assert.Equal(t, "%a.*b(%", ContainsPattern("A.*B("))
}

func TestParseBool(t *testing.T) {
	got, err := ParseBool("isAdmin", "")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = ParseBool("isAdmin", "true")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, *got)

	_, err = ParseBool("isAdmin", "yes please")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidQuery))
}

func TestOneOf(t *testing.T) {
	allowed := []string{"user", "broker"}
	assert.NoError(t, OneOf("role", "", allowed))
	assert.NoError(t, OneOf("role", "broker", allowed))
	assert.True(t, errors.Is(OneOf("role", "king", allowed), apperrors.ErrInvalidQuery))
}

func TestSorts_Order(t *testing.T) {
	order, err := PropertySorts.Order("")
	require.NoError(t, err)
	assert.Equal(t, NaturalOrder, order)

	order, err = PropertySorts.Order("price_desc")
	require.NoError(t, err)
	assert.Equal(t, "rent DESC, created_at DESC", order)

	_, err = PropertySorts.Order("rent; DROP TABLE users")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidQuery))
}
