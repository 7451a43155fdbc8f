package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShareOptionExpireAt(t *testing.T) {
	now := time.Date(2025, time.January, 31, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		opt  ShareOption
		want time.Time
	}{
		{ShareOneHour, now.Add(time.Hour)},
		{ShareThreeDays, time.Date(2025, time.February, 3, 10, 0, 0, 0, time.UTC)},
		{ShareSevenDays, time.Date(2025, time.February, 7, 10, 0, 0, 0, time.UTC)},
		{ShareOneMonth, now.AddDate(0, 1, 0)},
		{ShareThreeMonths, time.Date(2025, time.May, 1, 10, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(string(tt.opt), func(t *testing.T) {
			got, err := tt.opt.ExpireAt(now)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s want %s", got, tt.want)
		})
	}
}

func TestShareOptionUnknown(t *testing.T) {
	for _, opt := range []ShareOption{"", "2h", "1y", "1H"} {
		_, err := opt.ExpireAt(testNow)
		assert.ErrorIs(t, err, ErrInvalidShareOption, string(opt))
	}
}

func TestShareOptionsAreOrdered(t *testing.T) {
	prev := testNow
	for _, opt := range ShareOptions {
		exp, err := opt.ExpireAt(testNow)
		require.NoError(t, err)
		assert.True(t, exp.After(prev), string(opt))
		prev = exp
	}
}

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		in      string
		want    Language
		wantErr bool
	}{
		{"en", LanguageEnglish, false},
		{" UK ", LanguageUkrainian, false},
		{"en_GB", LanguageEnglish, false},
		{"uk-UA", LanguageUkrainian, false},
		{"", "", true},
		{"und", "", true},
		{"../etc", "", true},
		{"e n", "", true},
	}
	for _, tt := range tests {
		got, err := ParseLanguage(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrUnknownLanguage, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}
