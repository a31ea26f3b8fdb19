package tests

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/stretchr/testify/suite"

	sel "github.com/goserg/foosrating/tests/selectors"
)

const baseURL = "http://0.0.0.0:3000"

type FoosSuite struct {
	suite.Suite
	process *Process
}

var (
	serverConfigPath string
	botConfigPath    string
)

func init() {
	flag.StringVar(&serverConfigPath, "server-config", "", "path to server configs")
	flag.StringVar(&botConfigPath, "bot-config", "", "path to bot configs")
}

func (s *FoosSuite) SetupSuite() {
	fmt.Println("setupSuite")
	s.Require().NotEmpty(serverConfigPath, "-server-config MUST be set")
	s.Require().NotEmpty(botConfigPath, "-bot-config MUST be set")
	p := NewProcess(context.Background(), "../bin/server",
		"-server-config", serverConfigPath,
		"-bot-config", botConfigPath)
	s.process = p
	err := p.Start(context.Background())
	if err != nil {
		s.T().Errorf("cant start process: %v", err)
	}

	if err := waitForStartup(time.Second * 5); err != nil {
		stdout, stderr := p.Output()
		s.T().Logf("server stdout:\n%s\nserver stderr:\n%s", stdout, stderr)
		s.T().Fatalf("unable to start app: %v", err)
	}
}

func waitForStartup(duration time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), duration)
	defer cancel()

	ticker := time.NewTicker(time.Second / 2)
	for {
		select {
		case <-ticker.C:
			r, _ := http.Get(baseURL + "/")
			if r != nil && r.StatusCode == http.StatusOK {
				return nil
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (s *FoosSuite) TearDownSuite() {
	fmt.Println("teardown foos suite")
	exitCode, err := s.process.Stop()
	if err != nil {
		s.T().Logf("cant stop process: %v", err)
	}
	s.T().Logf("process finished with code %d", exitCode)
	for _, f := range []string{"test_rating.sqlite", "test_auth.sqlite"} {
		if err := os.Remove(f); err != nil && !os.IsNotExist(err) {
			s.T().Logf("cant remove %s: %v", f, err)
		}
	}
}

func (s *FoosSuite) TestHandlers() {
	fmt.Println("test handlers")
	defer fmt.Println("test finished")

	ctx, cancelTimeout := context.WithTimeout(context.Background(), time.Second*30)
	defer cancelTimeout()

	ctx, cancel := chromedp.NewContext(ctx)
	defer cancel()

	var logo string
	err := chromedp.Run(ctx,
		s.CheckStatus(baseURL+"/api/matches", http.StatusUnauthorized),
		s.CheckStatus(baseURL+"/api/import", http.StatusUnauthorized),
		s.CheckStatus(baseURL+"/", http.StatusOK),
		s.CheckStatus(baseURL+"/api", http.StatusOK),
		s.CheckStatus(baseURL+"/api/matches-list", http.StatusOK),
		s.CheckStatus(baseURL+"/api/timeseries", http.StatusOK),
		s.CheckStatus(baseURL+"/signin", http.StatusOK),
		s.CheckStatus(baseURL+"/signout", http.StatusOK),
		s.CheckStatus(baseURL+"/signup", http.StatusOK),
		chromedp.Navigate(baseURL+"/"),
		chromedp.Text(sel.Logo, &logo),
	)
	if err != nil {
		s.T().Fatal(err.Error())
	}
	s.Equal("Кикер-рейтинг", logo)

	// Signed in as root everything is reachable.
	err = chromedp.Run(ctx,
		chromedp.Navigate(baseURL+"/signin"),
		chromedp.SendKeys(sel.SignInFormUsername, "root"),
		chromedp.SendKeys(sel.SignInFormPass, "root"),
		chromedp.Click(sel.SignInFormSubmit),
		chromedp.WaitVisible(sel.Logo),
		s.CheckStatus(baseURL+"/api/matches", http.StatusOK),
	)
	if err != nil {
		s.T().Fatal(err.Error())
	}

	s.createPlayers(ctx, "Вася", "Петя", "Коля", "Дима")

	var score string
	err = chromedp.Run(ctx,
		chromedp.Navigate(baseURL+"/api/matches"),
		chromedp.SendKeys(sel.NewMatchFormYellowOffense, "Вася"),
		chromedp.SendKeys(sel.NewMatchFormYellowDefense, "Петя"),
		chromedp.SendKeys(sel.NewMatchFormYellowScore, "10"),
		chromedp.SendKeys(sel.NewMatchFormBlackOffense, "Коля"),
		chromedp.SendKeys(sel.NewMatchFormBlackDefense, "Дима"),
		chromedp.SendKeys(sel.NewMatchFormBlackScore, "4"),
		chromedp.Click(sel.NewMatchFormSubmit),
		chromedp.WaitVisible(sel.MatchListRow),
		chromedp.Text(sel.MatchListRowScore, &score),
	)
	if err != nil {
		s.T().Fatal(err.Error())
	}
	s.Equal("10:4", score)

	var firstPlayer string
	err = chromedp.Run(ctx,
		chromedp.Navigate(baseURL+"/api"),
		chromedp.WaitVisible(sel.PlayerListRow),
		chromedp.Text(sel.PlayerListRowLink, &firstPlayer),
	)
	if err != nil {
		s.T().Fatal(err.Error())
	}
	s.NotEmpty(firstPlayer)
}

func (s *FoosSuite) createPlayers(ctx context.Context, names ...string) {
	for _, name := range names {
		err := chromedp.Run(ctx,
			chromedp.Navigate(baseURL+"/api/players"),
			chromedp.SendKeys(sel.NewPlayerFormName, name),
			chromedp.Click(sel.NewPlayerFormSubmit),
			chromedp.WaitVisible(sel.Logo),
		)
		if err != nil {
			s.T().Fatalf("cant create player %s: %v", name, err)
		}
	}
}

// CheckStatus navigates to path and asserts the document response status.
func (s *FoosSuite) CheckStatus(path string, want int64) chromedp.Tasks {
	return []chromedp.Action{
		chromedp.ActionFunc(func(ctx context.Context) error {
			var resp *network.Response
			resp, err := chromedp.RunResponse(ctx, chromedp.Navigate(path))
			if err != nil {
				return err
			}
			if resp.Status != want {
				s.T().Errorf("%s: ожидался статус %d, сервер ответил статусом %d", path, want, resp.Status)
			}
			return nil
		}),
	}
}
