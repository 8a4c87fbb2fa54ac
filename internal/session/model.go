package session

import "time"

// Well-known value keys.
const (
	KeyLoginCode = "loginCode"
	KeyUserID    = "userID"
	KeyCart      = "cart"
)

type Kind string

const (
	KindString Kind = "string"
	KindInt    Kind = "int"
	KindList   Kind = "list"
)

// Value is the tagged union stored in a session's value bag. Pages store
// arbitrary feature state here (the cart, for instance) next to the login
// flow's own keys.
type Value struct {
	Kind Kind     `json:"kind"`
	Str  string   `json:"str,omitempty"`
	Int  int64    `json:"int,omitempty"`
	List []string `json:"list,omitempty"`
}

func String(s string) Value {
	return Value{Kind: KindString, Str: s}
}

func Int(i int64) Value {
	return Value{Kind: KindInt, Int: i}
}

func List(l []string) Value {
	return Value{Kind: KindList, List: l}
}

// Session is the server-side record of a visitor, referenced by the opaque
// signed cookie value.
type Session struct {
	ID        string           `json:"id"`
	Values    map[string]Value `json:"values"`
	CreatedAt time.Time        `json:"createdAt"`
}

func New(id string) *Session {
	return &Session{
		ID:        id,
		Values:    map[string]Value{},
		CreatedAt: time.Now(),
	}
}

func (s *Session) GetString(key string) string {
	v, ok := s.Values[key]
	if !ok || v.Kind != KindString {
		return ""
	}

	return v.Str
}

func (s *Session) SetString(key, value string) {
	if s.Values == nil {
		s.Values = map[string]Value{}
	}
	s.Values[key] = String(value)
}

func (s *Session) GetList(key string) []string {
	v, ok := s.Values[key]
	if !ok || v.Kind != KindList {
		return nil
	}

	return v.List
}

func (s *Session) SetList(key string, value []string) {
	if s.Values == nil {
		s.Values = map[string]Value{}
	}
	s.Values[key] = List(value)
}

func (s *Session) Delete(key string) {
	delete(s.Values, key)
}

func (s *Session) LoginCode() string {
	return s.GetString(KeyLoginCode)
}

func (s *Session) SetLoginCode(code string) {
	s.SetString(KeyLoginCode, code)
}

func (s *Session) UserID() string {
	return s.GetString(KeyUserID)
}

func (s *Session) SetUserID(id string) {
	s.SetString(KeyUserID, id)
}

func (s *Session) ClearUserID() {
	s.Delete(KeyUserID)
}

func (s *Session) Cart() []string {
	return s.GetList(KeyCart)
}

func (s *Session) SetCart(items []string) {
	s.SetList(KeyCart, items)
}
