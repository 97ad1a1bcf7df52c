package acquisition

import (
	"circuit-planner-service/internal/domain"
	"circuit-planner-service/internal/platform/obs"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://tycoon.airlines-manager.com"
	membersPath    = "/alliance/members"

	cookieBannerSelector  = ".cc-window.cc-banner"
	cookieDismissSelector = ".cc-btn.cc-dismiss"
	memberHeadingXPath    = "//div[@id='underBox']//h3"
	networkJSONSelector   = "#map_NetworkJson"
)

const revealNetworkJSON = `() => {
	const el = document.getElementById('map_NetworkJson');
	if (!el) return false;
	el.classList.remove('hidden');
	el.style.display = 'block';
	return true;
}`

type ScraperConfig struct {
	BaseURL     string
	ProfilePath string
	Username    string
	Password    string
	Headless    bool
	Timeout     time.Duration
}

// RodNetworkScraper reads excluded destinations from the game website with a
// headless Chrome session. Each call runs in its own browser.
type RodNetworkScraper struct {
	cfg ScraperConfig
}

func NewRodNetworkScraper(cfg ScraperConfig) (*RodNetworkScraper, error) {
	if cfg.Username == "" || cfg.Password == "" {
		return nil, errors.New("new rod scraper: username and password are required")
	}
	if cfg.ProfilePath == "" {
		return nil, errors.New("new rod scraper: profile path is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &RodNetworkScraper{cfg: cfg}, nil
}

// ExcludedDestinations returns the arrival airports of member's network. An
// empty member reads the network of the logged-in company.
func (s *RodNetworkScraper) ExcludedDestinations(ctx context.Context, member string) (_ domain.DestinationSet, err error) {
	defer obs.Time(ctx, "rod.ExcludedDestinations")(&err)

	sess, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	defer sess.close()

	if member != "" {
		if err := sess.openMemberNetwork(member); err != nil {
			return nil, err
		}
	}

	raw, err := sess.networkJSON()
	if err != nil {
		return nil, err
	}

	set, err := ParseNetworkJSON([]byte(raw))
	if err != nil {
		return nil, err
	}

	obs.Logger(ctx).Info("network scraped",
		zap.String("member", member),
		zap.Int("excluded", len(set)),
	)
	return set, nil
}

// ListMembers returns the usernames listed on the alliance members page.
func (s *RodNetworkScraper) ListMembers(ctx context.Context) (_ []string, err error) {
	defer obs.Time(ctx, "rod.ListMembers")(&err)

	sess, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	defer sess.close()

	return sess.members()
}

type scrapeSession struct {
	cfg      ScraperConfig
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
}

// open launches a browser, loads the profile page and logs in.
func (s *RodNetworkScraper) open(ctx context.Context) (*scrapeSession, error) {
	l := launcher.New().Headless(s.cfg.Headless)
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("scraper: launch browser: %w", err)
	}

	sess := &scrapeSession{cfg: s.cfg, launcher: l}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		sess.close()
		return nil, fmt.Errorf("scraper: connect to chrome: %w", err)
	}
	sess.browser = browser

	page, err := browser.Page(proto.TargetCreateTarget{URL: s.cfg.BaseURL + s.cfg.ProfilePath})
	if err != nil {
		sess.close()
		return nil, fmt.Errorf("scraper: open profile page: %w", err)
	}
	sess.page = page

	if err := sess.login(); err != nil {
		sess.close()
		return nil, err
	}
	return sess, nil
}

func (s *scrapeSession) close() {
	if s.browser != nil {
		_ = s.browser.Close()
	}
	s.launcher.Kill()
	s.launcher.Cleanup()
}

// timed returns the session page bounded by the configured timeout and the
// func that releases its timer.
func (s *scrapeSession) timed() (*rod.Page, func()) {
	return boundedPage(s.page, s.cfg.Timeout)
}

func boundedPage(p *rod.Page, d time.Duration) (*rod.Page, func()) {
	tp := p.Timeout(d)
	return tp, func() { tp.CancelTimeout() }
}

func (s *scrapeSession) login() error {
	p, release := s.timed()
	defer release()
	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("scraper: login: wait load: %w", err)
	}

	fields := []struct{ selector, value string }{
		{"#username", s.cfg.Username},
		{"#password", s.cfg.Password},
	}
	for _, f := range fields {
		el, err := p.Element(f.selector)
		if err != nil {
			return fmt.Errorf("scraper: login: find %s: %w", f.selector, err)
		}
		if err := el.Input(f.value); err != nil {
			return fmt.Errorf("scraper: login: fill %s: %w", f.selector, err)
		}
	}

	submit, err := p.Element("#loginSubmit")
	if err != nil {
		return fmt.Errorf("scraper: login: find submit: %w", err)
	}
	if err := submit.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("scraper: login: submit: %w", err)
	}
	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("scraper: login: wait redirect: %w", err)
	}
	return nil
}

// dismissCookies closes the consent banner when it covers the page.
func (s *scrapeSession) dismissCookies() {
	has, banner, err := s.page.Has(cookieBannerSelector)
	if err != nil || !has {
		return
	}
	if visible, err := banner.Visible(); err != nil || !visible {
		return
	}
	if btn, err := banner.Element(cookieDismissSelector); err == nil {
		_ = btn.Click(proto.InputMouseButtonLeft, 1)
	}
}

func (s *scrapeSession) members() ([]string, error) {
	p, release := s.timed()
	defer release()
	if err := p.Navigate(s.cfg.BaseURL + membersPath); err != nil {
		return nil, fmt.Errorf("scraper: open members page: %w", err)
	}
	if err := p.WaitLoad(); err != nil {
		return nil, fmt.Errorf("scraper: members page: wait load: %w", err)
	}

	headings, err := p.ElementsX(memberHeadingXPath)
	if err != nil {
		return nil, fmt.Errorf("scraper: members page: list headings: %w", err)
	}

	members := make([]string, 0, len(headings))
	for _, h := range headings {
		text, err := h.Text()
		if err != nil {
			return nil, fmt.Errorf("scraper: members page: read heading: %w", err)
		}
		if name, ok := memberFromHeading(text); ok {
			members = append(members, name)
		}
	}
	return members, nil
}

// openMemberNetwork follows the member's consult link and then the
// "Network and fleet" link of their company page.
func (s *scrapeSession) openMemberNetwork(member string) error {
	if _, err := s.members(); err != nil {
		return err
	}
	s.dismissCookies()

	p, release := s.timed()
	defer release()
	consult, err := p.ElementX(consultLinkXPath(member))
	if err != nil {
		return fmt.Errorf("scraper: member %q: find consult link: %w", member, err)
	}
	if err := consult.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("scraper: member %q: open profile: %w", member, err)
	}
	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("scraper: member %q: wait profile: %w", member, err)
	}
	s.dismissCookies()

	network, err := p.ElementR("a", "Network and fleet")
	if err != nil {
		return fmt.Errorf("scraper: member %q: find network link: %w", member, err)
	}
	if err := network.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("scraper: member %q: open network: %w", member, err)
	}
	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("scraper: member %q: wait network: %w", member, err)
	}
	return nil
}

// networkJSON unhides the network map payload and returns its text.
func (s *scrapeSession) networkJSON() (string, error) {
	s.dismissCookies()

	p, release := s.timed()
	defer release()
	res, err := p.Eval(revealNetworkJSON)
	if err != nil {
		return "", fmt.Errorf("scraper: reveal network json: %w", err)
	}
	if !res.Value.Bool() {
		return "", errors.New("scraper: network json element not found")
	}

	el, err := p.Element(networkJSONSelector)
	if err != nil {
		return "", fmt.Errorf("scraper: find network json: %w", err)
	}
	text, err := el.Text()
	if err != nil {
		return "", fmt.Errorf("scraper: read network json: %w", err)
	}
	return text, nil
}

// memberFromHeading extracts the username from a "Company - username" heading.
func memberFromHeading(text string) (string, bool) {
	text = strings.TrimSpace(text)
	i := strings.LastIndex(text, " - ")
	if i < 0 {
		return "", false
	}
	name := strings.TrimSpace(text[i+len(" - "):])
	return name, name != ""
}

func consultLinkXPath(member string) string {
	return fmt.Sprintf("//h3[contains(text(), %s)]/../../div[@id='underBox'][2]//a", xpathLiteral(member))
}

// xpathLiteral quotes s as an XPath 1.0 string literal.
func xpathLiteral(s string) string {
	switch {
	case !strings.Contains(s, "'"):
		return "'" + s + "'"
	case !strings.Contains(s, `"`):
		return `"` + s + `"`
	}
	parts := strings.Split(s, "'")
	quoted := make([]string, 0, 2*len(parts))
	for i, p := range parts {
		if i > 0 {
			quoted = append(quoted, `"'"`)
		}
		quoted = append(quoted, "'"+p+"'")
	}
	return "concat(" + strings.Join(quoted, ", ") + ")"
}
