package session

import (
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"sync"

	"github.com/PizzaHomicide/tanpen/internal/domain"
	"github.com/PizzaHomicide/tanpen/internal/log"
)

// ErrNoSession is returned when the host platform did not supply init data.  This is a valid state: the app runs but
// cannot talk to the API.
var ErrNoSession = errors.New("no session: open Tanpen from inside the host app")

// Parse decodes host-issued init data.  The signature is never checked here, the server does that.  A missing or
// unreadable user field leaves the session user empty rather than failing.
func Parse(initData string) (*domain.Session, error) {
	initData = strings.TrimSpace(initData)
	if initData == "" {
		return nil, ErrNoSession
	}

	sess := &domain.Session{InitData: initData}

	values, err := url.ParseQuery(initData)
	if err != nil {
		log.Debug("Init data is not a valid query string, using it as an opaque token", "error", err)
		return sess, nil
	}

	rawUser := values.Get("user")
	if rawUser == "" {
		return sess, nil
	}
	if err := json.Unmarshal([]byte(rawUser), &sess.User); err != nil {
		log.Debug("Unable to decode user from init data", "error", err)
		sess.User = domain.SessionUser{}
	}
	return sess, nil
}

// Provider hands out the session for the lifetime of the app.  The init data is read once, on first use.
type Provider struct {
	initData string

	once    sync.Once
	session *domain.Session
	err     error
}

func NewProvider(initData string) *Provider {
	return &Provider{initData: initData}
}

// Session returns the parsed session, or ErrNoSession when running outside the host
func (p *Provider) Session() (*domain.Session, error) {
	p.once.Do(func() {
		p.session, p.err = Parse(p.initData)
		if p.err != nil {
			log.Info("No host session available")
			return
		}
		log.Info("Host session ready", "user_id", p.session.User.ID)
	})
	return p.session, p.err
}

// Token returns the raw init data, or an empty string when there is no session
func (p *Provider) Token() string {
	sess, err := p.Session()
	if err != nil {
		return ""
	}
	return sess.InitData
}
