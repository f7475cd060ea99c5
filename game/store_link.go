package game

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Store classifies the storefront a link points to.
type Store int

const (
	StoreUnknown Store = iota
	StoreSteam
	StoreGog
)

func (s Store) String() string {
	switch s {
	case StoreSteam:
		return "Steam"
	case StoreGog:
		return "Gog"
	default:
		return "Unknown"
	}
}

// MarshalText encodes the store by name so exports stay readable.
func (s Store) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText accepts the names produced by MarshalText.
func (s *Store) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Steam":
		*s = StoreSteam
	case "Gog":
		*s = StoreGog
	case "Unknown", "":
		*s = StoreUnknown
	default:
		return fmt.Errorf("unknown store %q", text)
	}
	return nil
}

var steamAppRe = regexp.MustCompile(`https://store\.steampowered\.com/app/(\d+)`)

// StoreLink is a storefront URL together with its classification.
type StoreLink struct {
	Store Store  `json:"store" yaml:"store"`
	URL   string `json:"url" yaml:"url"`
}

// NewStoreLink classifies url. Steam is checked before Gog.
func NewStoreLink(url string) StoreLink {
	return StoreLink{Store: Classify(url), URL: url}
}

// Classify returns the store a URL belongs to using plain substring tests.
func Classify(url string) Store {
	switch {
	case strings.Contains(url, "steampowered"):
		return StoreSteam
	case strings.Contains(url, "gog.com"):
		return StoreGog
	default:
		return StoreUnknown
	}
}

// ID returns the Steam application id of the link. Only Steam links carry
// one; anything else, or a Steam URL without a numeric app segment, yields false.
func (l StoreLink) ID() (int, bool) {
	if l.Store != StoreSteam {
		return 0, false
	}
	m := steamAppRe.FindStringSubmatch(l.URL)
	if m == nil {
		return 0, false
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return id, true
}

// StoreLinks is the ordered list of links of one game.
type StoreLinks []StoreLink

// URLs returns the raw URLs in order.
func (ls StoreLinks) URLs() []string {
	if ls == nil {
		return nil
	}
	urls := make([]string, len(ls))
	for i, l := range ls {
		urls[i] = l.URL
	}
	return urls
}

// SteamIDs collects the application ids of every Steam link.
func (ls StoreLinks) SteamIDs() []int {
	var ids []int
	for _, l := range ls {
		if id, ok := l.ID(); ok {
			ids = append(ids, id)
		}
	}
	return ids
}
