package facet

import (
	"fmt"
	"sort"
	"time"

	"fomo-app/internal/apperr"
	"fomo-app/internal/models"
	"fomo-app/internal/query"
)

// Truncation limits for the discovery UI.
const (
	TopOrganizers = 50
	TopTags       = 4
)

// Facet is one selectable filter value with its hit count.
type Facet struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// UserLookup resolves organizer ids to display names.
type UserLookup interface {
	GetUserByID(id string) (*models.User, error)
}

// FacetService computes {value, label, count} lists over a candidate event
// set. The dimension being faceted is excluded from the candidate filtering
// so counts reflect "what else is available", not the current selection.
type FacetService struct {
	Engine *query.Engine
	Users  UserLookup
	Cache  *Cache
}

func NewFacetService(engine *query.Engine, users UserLookup, cache *Cache) *FacetService {
	return &FacetService{Engine: engine, Users: users, Cache: cache}
}

var periodLabels = map[query.Period]string{
	query.PeriodToday:       "Today",
	query.PeriodTomorrow:    "Tomorrow",
	query.PeriodThisWeek:    "This week",
	query.PeriodThisWeekend: "This weekend",
	query.PeriodNextWeek:    "Next week",
	query.PeriodThisMonth:   "This month",
	query.PeriodNextMonth:   "Next month",
	query.PeriodPast:        "Past",
	query.PeriodLater:       "Later",
}

// GroupByPeriod buckets the candidate set by primary period. The past
// bucket appears only when the include-past flag is set.
func (s *FacetService) GroupByPeriod(events []models.Event, state query.FilterState) ([]Facet, error) {
	if cached, ok := s.cached("period", state); ok {
		return cached, nil
	}

	candidate := state
	candidate.Period = ""
	candidate.IncludePast = true // period counting looks at the whole set
	filtered, err := s.Engine.ApplyFilters(events, candidate)
	if err != nil {
		return nil, err
	}

	now := time.Now().In(stateLocation(state))
	counter := newCounter()
	for _, event := range filtered {
		period := query.Classify(event, now)
		if period == query.PeriodPast && !state.IncludePast {
			continue
		}
		counter.add(string(period), periodLabels[period])
	}
	facets := counter.sorted(0)
	s.store("period", state, facets)
	return facets, nil
}

var responseLabels = map[models.ResponseValue]string{
	models.ResponseGoing:         "Going",
	models.ResponseInterested:    "Interested",
	models.ResponseMaybe:         "Maybe",
	models.ResponseNotInterested: "Not interested",
	models.ResponseNotThere:      "Not there",
	models.ResponseCleared:       "Cleared",
	models.ResponseNone:          "New",
}

// GroupByResponse buckets the candidate set by the viewer's current
// response. Invited and seen fold into the "new" bucket with truly
// unanswered events.
func (s *FacetService) GroupByResponse(events []models.Event, state query.FilterState) ([]Facet, error) {
	if state.ViewerID == "" {
		return nil, apperr.Validation("viewer_id", "required when faceting by response")
	}
	if cached, ok := s.cached("response", state); ok {
		return cached, nil
	}

	candidate := state
	candidate.Responses = nil
	filtered, err := s.Engine.ApplyFilters(events, candidate)
	if err != nil {
		return nil, err
	}

	latest, err := s.Engine.Responses.ResolveLatestByUser(state.ViewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve responses for viewer %s: %w", state.ViewerID, err)
	}

	counter := newCounter()
	for _, event := range filtered {
		current := models.ResponseNone
		if entry, ok := latest[event.ID]; ok {
			current = entry.FinalResponse
		}
		if current.IsUnanswered() {
			current = models.ResponseNone
		}
		counter.add(string(current), responseLabels[current])
	}
	facets := counter.sorted(0)
	s.store("response", state, facets)
	return facets, nil
}

// GroupByTag counts tag usage over the candidate set, top TopTags only.
func (s *FacetService) GroupByTag(events []models.Event, state query.FilterState) ([]Facet, error) {
	if cached, ok := s.cached("tag", state); ok {
		return cached, nil
	}

	candidate := state
	candidate.Tags = nil
	filtered, err := s.Engine.ApplyFilters(events, candidate)
	if err != nil {
		return nil, err
	}

	counter := newCounter()
	for _, event := range filtered {
		for _, tag := range event.Tags {
			counter.add(tag, tag)
		}
	}
	facets := counter.sorted(TopTags)
	s.store("tag", state, facets)
	return facets, nil
}

// GroupByOrganizer counts events per organizer over the candidate set, top
// TopOrganizers, labelled with the organizer's name where the lookup
// resolves and the raw id otherwise.
func (s *FacetService) GroupByOrganizer(events []models.Event, state query.FilterState) ([]Facet, error) {
	if cached, ok := s.cached("organizer", state); ok {
		return cached, nil
	}

	candidate := state
	candidate.OrganizerID = ""
	filtered, err := s.Engine.ApplyFilters(events, candidate)
	if err != nil {
		return nil, err
	}

	counter := newCounter()
	for _, event := range filtered {
		counter.add(event.OrganizerID, s.organizerLabel(event.OrganizerID))
	}
	facets := counter.sorted(TopOrganizers)
	s.store("organizer", state, facets)
	return facets, nil
}

func (s *FacetService) organizerLabel(organizerID string) string {
	if s.Users == nil {
		return organizerID
	}
	user, err := s.Users.GetUserByID(organizerID)
	if err != nil || user == nil || user.Name == "" {
		return organizerID
	}
	return user.Name
}

func (s *FacetService) cached(dimension string, state query.FilterState) ([]Facet, bool) {
	if s.Cache == nil {
		return nil, false
	}
	return s.Cache.Get(dimension, state)
}

func (s *FacetService) store(dimension string, state query.FilterState, facets []Facet) {
	if s.Cache == nil {
		return
	}
	s.Cache.Set(dimension, state, facets)
}

func stateLocation(state query.FilterState) *time.Location {
	if state.Location != nil {
		return state.Location
	}
	return time.Local
}

// counter accumulates counts while remembering first-seen order so that
// ties sort deterministically.
type counter struct {
	counts map[string]int
	labels map[string]string
	order  []string
}

func newCounter() *counter {
	return &counter{
		counts: make(map[string]int),
		labels: make(map[string]string),
	}
}

func (c *counter) add(value, label string) {
	if _, seen := c.counts[value]; !seen {
		c.order = append(c.order, value)
		c.labels[value] = label
	}
	c.counts[value]++
}

// sorted returns facets by descending count, ties broken by first-seen
// order, truncated to limit when limit > 0.
func (c *counter) sorted(limit int) []Facet {
	facets := make([]Facet, 0, len(c.order))
	for _, value := range c.order {
		facets = append(facets, Facet{Value: value, Label: c.labels[value], Count: c.counts[value]})
	}
	sort.SliceStable(facets, func(i, j int) bool {
		return facets[i].Count > facets[j].Count
	})
	if limit > 0 && len(facets) > limit {
		facets = facets[:limit]
	}
	return facets
}
