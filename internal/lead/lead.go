package lead

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

var (
	// ErrStorageRead marks unparsable persisted content.
	ErrStorageRead = errors.New("lead storage read failed")
	// ErrStorageWrite marks a failed append.
	ErrStorageWrite = errors.New("lead storage write failed")
	// ErrInvalidLead is returned for leads missing a user id or phone.
	ErrInvalidLead = errors.New("invalid lead")
)

// Role is the user's self-declared professional category.
type Role string

const (
	RoleUnknown  Role = "unknown"
	RoleBusiness Role = "business"
	RoleBarber   Role = "barber"
	RoleTutor    Role = "tutor"
	RoleIT       Role = "it"
	RoleService  Role = "service"
	RoleOther    Role = "other"
)

// Roles lists the selectable roles in menu order.
var Roles = []Role{RoleBusiness, RoleBarber, RoleTutor, RoleIT, RoleService, RoleOther}

var roleLabels = map[Role]string{
	RoleBusiness: "1️⃣ Biznes egasi",
	RoleBarber:   "2️⃣ Sartarosh",
	RoleTutor:    "3️⃣ Onlayn repetitor",
	RoleIT:       "4️⃣ Dasturchi / IT",
	RoleService:  "5️⃣ Servis ustasi",
	RoleOther:    "🔘 Boshqa",
}

// UnknownLabel is shown for leads captured without a selection.
const UnknownLabel = "Noma'lum"

// Label returns the reply-keyboard caption of r.
func (r Role) Label() string {
	if l, ok := roleLabels[r]; ok {
		return l
	}
	return UnknownLabel
}

// Valid reports whether r is one of the selectable roles.
func (r Role) Valid() bool {
	_, ok := roleLabels[r]
	return ok
}

// RoleFromLabel maps a keyboard caption back to its role.
func RoleFromLabel(text string) (Role, bool) {
	text = strings.TrimSpace(text)
	for _, r := range Roles {
		if roleLabels[r] == text {
			return r, true
		}
	}
	return RoleUnknown, false
}

// ParseRole accepts a role code or a keyboard caption. Anything else,
// including the legacy "Noma'lum" marker, is RoleUnknown.
func ParseRole(s string) Role {
	s = strings.TrimSpace(s)
	if r := Role(strings.ToLower(s)); r.Valid() {
		return r
	}
	r, _ := RoleFromLabel(s)
	return r
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*r = ParseRole(s)
	return nil
}

// Problem is the user's self-declared pain point.
type Problem string

const (
	ProblemUnknown Problem = "unknown"
	ProblemClients Problem = "clients"
	ProblemSales   Problem = "sales"
	ProblemBrand   Problem = "brand"
	ProblemIncome  Problem = "income"
	ProblemOther   Problem = "other"
)

// Problems lists the selectable problems in menu order.
var Problems = []Problem{ProblemClients, ProblemSales, ProblemBrand, ProblemIncome, ProblemOther}

var problemLabels = map[Problem]string{
	ProblemClients: "🚀 Mijozlarni jalb qilish",
	ProblemSales:   "💵 Sotuvni oshirish",
	ProblemBrand:   "🌟 Brendni rivojlantirish",
	ProblemIncome:  "📈 Daromadni barqaror qilish",
	ProblemOther:   "🛠 Texnik yordam / Boshqa",
}

const problemKeyPrefix = "prob_"

// Label returns the button caption of p.
func (p Problem) Label() string {
	if l, ok := problemLabels[p]; ok {
		return l
	}
	return UnknownLabel
}

// Valid reports whether p is one of the selectable problems.
func (p Problem) Valid() bool {
	_, ok := problemLabels[p]
	return ok
}

// Key returns the callback key of p, e.g. "prob_clients".
func (p Problem) Key() string {
	return problemKeyPrefix + string(p)
}

// IsProblemKey reports whether key carries the problem callback prefix.
func IsProblemKey(key string) bool {
	return strings.HasPrefix(key, problemKeyPrefix)
}

// ProblemFromKey resolves a callback key. Unknown codes return false.
func ProblemFromKey(key string) (Problem, bool) {
	code, ok := strings.CutPrefix(strings.TrimSpace(key), problemKeyPrefix)
	if !ok {
		return ProblemUnknown, false
	}
	p := Problem(code)
	if !p.Valid() {
		return ProblemUnknown, false
	}
	return p, true
}

// ParseProblem accepts a problem code or a button caption.
func ParseProblem(s string) Problem {
	s = strings.TrimSpace(s)
	if p := Problem(strings.ToLower(s)); p.Valid() {
		return p
	}
	for _, p := range Problems {
		if problemLabels[p] == s {
			return p
		}
	}
	return ProblemUnknown
}

func (p *Problem) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*p = ParseProblem(s)
	return nil
}

// Lead is one captured contact. It is never mutated after Append.
type Lead struct {
	ID         int64     `json:"id" db:"id"`
	UserID     int64     `json:"userId" db:"user_id"`
	Username   string    `json:"username,omitempty" db:"username"`
	FirstName  string    `json:"firstName" db:"first_name"`
	Phone      string    `json:"phone" db:"phone"`
	Role       Role      `json:"role" db:"role"`
	Problem    Problem   `json:"problem" db:"problem"`
	CapturedAt time.Time `json:"timestamp" db:"captured_at"`
}

// Validate checks the required fields.
func (l Lead) Validate() error {
	if l.UserID == 0 {
		return fmt.Errorf("%w: user id is required", ErrInvalidLead)
	}
	if strings.TrimSpace(l.Phone) == "" {
		return fmt.Errorf("%w: phone is required", ErrInvalidLead)
	}
	return nil
}

// normalized fills the unknown sentinels for empty selections.
func (l Lead) normalized() Lead {
	if !l.Role.Valid() {
		l.Role = RoleUnknown
	}
	if !l.Problem.Valid() {
		l.Problem = ProblemUnknown
	}
	l.Phone = strings.TrimSpace(l.Phone)
	return l
}

// Store persists leads. Append assigns ID and CapturedAt.
type Store interface {
	Append(ctx context.Context, l Lead) (Lead, error)
	LoadAll(ctx context.Context) ([]Lead, error)
}
