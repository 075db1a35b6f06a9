package main

import "os"
import "fmt"
import "log"
import "flag"
import "io/ioutil"
import "encoding/json"
import "github.com/krumpled/krumsession/store"
import "github.com/krumpled/krumsession/store/env"
import "github.com/krumpled/krumsession/store/auth"

const usage = `usage: krumsession [-env file] <command>

commands:
  login -token T -id N -name S -email E
  logout
  status
`

func main() {
	if e := run(os.Args[1:]); e != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", e)
		os.Exit(1)
	}
}

func run(args []string) error {
	global := flag.NewFlagSet("krumsession", flag.ContinueOnError)
	envFile := global.String("env", ".env", "env file to load")
	verbose := global.Bool("verbose", false, "print diagnostics")
	global.Usage = func() { fmt.Fprint(os.Stderr, usage) }

	if e := global.Parse(args); e != nil {
		return e
	}

	if global.NArg() == 0 {
		global.Usage()
		return fmt.Errorf("missing command")
	}

	config, e := env.Load(*envFile)

	if e != nil {
		return e
	}

	logger := log.New(os.Stderr, "[auth] ", log.LstdFlags)

	if !*verbose {
		logger.SetOutput(ioutil.Discard)
	}

	session, e := store.New(config, logger)

	if e != nil {
		return e
	}

	defer session.Close()

	command, rest := global.Arg(0), global.Args()[1:]

	switch command {
	case "login":
		return login(session.SessionStore, rest)
	case "logout":
		warn(session.Logout())
		fmt.Println("logged out")
		return nil
	case "status":
		return status(session.Current())
	}

	global.Usage()
	return fmt.Errorf("unknown command '%s'", command)
}

func login(sessions *auth.SessionStore, args []string) error {
	flags := flag.NewFlagSet("login", flag.ContinueOnError)
	token := flags.String("token", "", "access token")
	user := auth.UserInfo{}
	flags.Int64Var(&user.ID, "id", 0, "user id")
	flags.StringVar(&user.Name, "name", "", "user name")
	flags.StringVar(&user.Email, "email", "", "user email")

	if e := flags.Parse(args); e != nil {
		return e
	}

	if len(*token) == 0 {
		return fmt.Errorf("login requires -token")
	}

	warn(sessions.Login(*token, user))
	return status(sessions.Current())
}

func status(state auth.State) error {
	if !state.Authenticated() {
		fmt.Println("not authenticated")
		return nil
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(state)
}

// warn reports a persistence outcome without failing the command.
func warn(e error) {
	if e != nil {
		fmt.Fprintf(os.Stderr, "warning: %s\n", e)
	}
}
