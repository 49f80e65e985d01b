package stubapi

import (
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/lawbot360/web/internal/core/domain"
)

var (
	errInvalidCredentials = errors.New("invalid credentials")
	errUserExists         = errors.New("email already registered")
	errUserNotFound       = errors.New("user not found")
)

type account struct {
	user         domain.User
	passwordHash []byte
	createdAt    time.Time
}

// users is an in-memory account table that issues HS256 tokens.
type users struct {
	mu       sync.RWMutex
	byEmail  map[string]*account
	byID     map[int64]*account
	nextID   int64
	secret   []byte
	tokenTTL time.Duration
	cost     int
}

func newUsers(secret string, tokenTTL time.Duration, cost int) *users {
	if tokenTTL <= 0 {
		tokenTTL = 7 * 24 * time.Hour
	}
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &users{
		byEmail:  make(map[string]*account),
		byID:     make(map[int64]*account),
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		cost:     cost,
	}
}

func (u *users) register(name, email, password, role string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if role == "" {
		role = domain.RoleUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), u.cost)
	if err != nil {
		return nil, err
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	if _, ok := u.byEmail[email]; ok {
		return nil, errUserExists
	}
	u.nextID++
	acc := &account{
		user: domain.User{
			ID:    u.nextID,
			Name:  strings.TrimSpace(name),
			Email: email,
			Role:  role,
		},
		passwordHash: hash,
		createdAt:    time.Now().UTC(),
	}
	u.byEmail[email] = acc
	u.byID[acc.user.ID] = acc

	out := acc.user
	return &out, nil
}

func (u *users) login(email, password string) (*domain.User, error) {
	u.mu.RLock()
	acc, ok := u.byEmail[strings.ToLower(strings.TrimSpace(email))]
	u.mu.RUnlock()
	if !ok {
		return nil, errInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(password)) != nil {
		return nil, errInvalidCredentials
	}
	out := acc.user
	return &out, nil
}

func (u *users) byUserID(id int64) (*account, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	acc, ok := u.byID[id]
	if !ok {
		return nil, errUserNotFound
	}
	return acc, nil
}

// issue signs a token whose subject is the user ID.
func (u *users) issue(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(user.ID, 10),
		"role": user.Role,
		"exp":  time.Now().Add(u.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(u.secret)
}

// parse validates raw and returns the user ID it was issued for.
func (u *users) parse(raw string) (int64, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return u.secret, nil
	})
	if err != nil || !tkn.Valid {
		return 0, errInvalidCredentials
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return 0, errInvalidCredentials
	}
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, errInvalidCredentials
	}
	return id, nil
}
