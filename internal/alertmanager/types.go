package alertmanager

import "encoding/json"

// Silence is one silence entry as returned by the Alertmanager v2 API.
// Timestamps are kept as the RFC 3339 strings the API returns; ordering
// and the startsAt <= endsAt invariant are upstream's responsibility.
type Silence struct {
	ID        string        `json:"id"`
	Status    SilenceStatus `json:"status"`
	Matchers  []Matcher     `json:"matchers"`
	StartsAt  string        `json:"startsAt"`
	EndsAt    string        `json:"endsAt"`
	UpdatedAt string        `json:"updatedAt"`
	CreatedBy string        `json:"createdBy"`
	Comment   string        `json:"comment"`
}

// SilenceStatus carries the state label ("active", "pending", "expired")
type SilenceStatus struct {
	State string `json:"state"`
}

// Matcher defines which alert labels a silence applies to
type Matcher struct {
	Name    string `json:"name"`
	Value   string `json:"value"`
	IsRegex bool   `json:"isRegex"`
	IsEqual bool   `json:"isEqual"`
}

// UnmarshalJSON defaults isEqual to true when absent, matching the
// Alertmanager API definition
func (m *Matcher) UnmarshalJSON(data []byte) error {
	type alias Matcher
	tmp := alias{IsEqual: true}
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*m = Matcher(tmp)
	return nil
}
