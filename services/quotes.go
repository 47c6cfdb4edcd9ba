package services

import (
	"errors"
	"time"
)

// ErrEmptyCatalog is returned when quote selection runs against an
// empty catalog. This only happens on broken configuration.
var ErrEmptyCatalog = errors.New("quote catalog is empty")

// DefaultCatalog is the compiled-in quote list. Deployments may
// replace it via the app config, which changes which quote maps to
// which date but keeps selection deterministic.
var DefaultCatalog = []string{
	"성공은 준비된 기회를 만났을 때 일어난다.",
	"오늘 하루도 최선을 다해 살아가자.",
	"작은 변화가 큰 차이를 만든다.",
	"매일 조금씩 나아지는 것이 완벽이다.",
	"새로운 하루, 새로운 기회가 시작된다.",
	"꿈을 이루기 위한 첫걸음을 내디뎌라.",
	"포기하지 말고 끝까지 해보자.",
	"오늘의 노력이 내일의 성과를 만든다.",
}

// DateFormat is the canonical calendar-date layout used everywhere:
// quote selection, check-in rows and ranking filters. Fixing the
// format keeps the checksum below reproducible across machines and
// locales.
const DateFormat = "2006-01-02"

// CanonicalDate renders t as YYYY-MM-DD in the given location.
func CanonicalDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateFormat)
}

// SelectQuote deterministically picks the quote of the day: the byte
// values of the canonical date string are summed and the total taken
// modulo the catalog size. Every caller sees the same quote for the
// same date, with no stored state.
func SelectQuote(catalog []string, date string) (string, error) {
	if len(catalog) == 0 {
		return "", ErrEmptyCatalog
	}
	sum := 0
	for i := 0; i < len(date); i++ {
		sum += int(date[i])
	}
	return catalog[sum%len(catalog)], nil
}

// QuoteOfDay selects from catalog for the date of t in loc.
func QuoteOfDay(catalog []string, t time.Time, loc *time.Location) (string, error) {
	return SelectQuote(catalog, CanonicalDate(t, loc))
}
