package model

import (
	"encoding/json"
)

// Tag is an AppFirst server tag grouping server ids.
type Tag struct {
	ID      int64   `json:"id,omitempty"`
	Name    string  `json:"name"`
	Servers []int64 `json:"servers"`
}

// Server is an AppFirst monitored server record.
//
// Only the fields this tool acts on are typed, the rest of the record is kept
// in Attributes and written back unchanged on update.
type Server struct {
	ID          int64  `json:"-"`
	Hostname    string `json:"hostname"`
	Nickname    string `json:"nickname"`
	Description string `json:"description"`

	Attributes map[string]json.RawMessage `json:"-"`
}

var serverFields = []string{"hostname", "nickname", "description"}

func (s *Server) UnmarshalJSON(b []byte) error {
	type plain Server

	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}

	attrs := map[string]json.RawMessage{}
	if err := json.Unmarshal(b, &attrs); err != nil {
		return err
	}

	for _, f := range serverFields {
		delete(attrs, f)
	}

	id := s.ID
	*s = Server(p)
	s.ID = id
	s.Attributes = attrs

	if raw, ok := attrs["id"]; ok {
		// a non numeric id is left for the caller to set
		_ = json.Unmarshal(raw, &s.ID)
	}

	return nil
}

func (s Server) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(s.Attributes)+len(serverFields))
	for k, v := range s.Attributes {
		out[k] = v
	}

	out["hostname"] = s.Hostname
	out["nickname"] = s.Nickname
	out["description"] = s.Description

	return json.Marshal(out)
}
