package jobboard

import "sort"

// Listing is a normalized job posting from any board.
type Listing struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location,omitempty"`
	Salary      string `json:"salary,omitempty"`
	JobType     string `json:"job_type,omitempty"`
	Experience  string `json:"experience,omitempty"`
	URL         string `json:"url,omitempty"`
	Description string `json:"description,omitempty"`
	PostedAt    string `json:"posted_at,omitempty"`
	Source      string `json:"source,omitempty"`
	Remote      bool   `json:"remote,omitempty"`
}

type Listings []*Listing

func (l Listings) Len() int {
	return len(l)
}

// SortByPostedDesc orders listings newest first. PostedAt values are ISO 8601
// dates, so their lexicographic order is the chronological one.
func (l Listings) SortByPostedDesc() {
	sort.SliceStable(l, func(i, j int) bool {
		return l[i].PostedAt > l[j].PostedAt
	})
}

// Truncate returns at most limit listings. A non-positive limit leaves the
// set unchanged.
func (l Listings) Truncate(limit int) Listings {
	if limit <= 0 || len(l) <= limit {
		return l
	}
	return l[:limit]
}

func (l Listings) FindByID(id string) *Listing {
	for _, listing := range l {
		if listing != nil && listing.ID == id {
			return listing
		}
	}
	return nil
}

func (l Listings) IDs() []string {
	ids := make([]string, 0, len(l))
	for _, listing := range l {
		if listing != nil {
			ids = append(ids, listing.ID)
		}
	}
	return ids
}
