package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/twirc/twirc"
	"github.com/twirc/twirc/handlers"
	"github.com/twirc/twirc/ircutil"
)

var flagUsername = flag.String("username", "", "The chat username (blank for an anonymous session)")
var flagPassword = flag.String("password", "", "The oauth token, oauth: prefix included (defaults to $TWITCH_OAUTH_TOKEN)")
var flagProtocol = flag.String("protocol", "", "Transport protocol (ws, wss, irc, ircs; default wss)")
var flagHost = flag.String("host", "", "Server host override")
var flagPort = flag.Int("port", 0, "Server port override")
var flagInsecure = flag.Bool("insecure", false, "Connect without TLS")
var flagSkipVerify = flag.Bool("skip-verify", false, "Skip TLS certificate verification")
var flagJoin = flag.String("join", "", "Comma-separated channels to join on connect")
var flagDebug = flag.Bool("debug", false, "Log raw protocol traffic")

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	flag.Parse()

	password := *flagPassword
	if password == "" {
		password = os.Getenv("TWITCH_OAUTH_TOKEN")
	}

	var debug twirc.DebugLogger
	if *flagDebug {
		debug = log.New(os.Stderr, "debug ", log.LstdFlags)
	}

	client := twirc.New(ctx, twirc.Config{
		Protocol:            *flagProtocol,
		Host:                *flagHost,
		Port:                *flagPort,
		Insecure:            *flagInsecure,
		SkipTLSVerification: *flagSkipVerify,
		Username:            *flagUsername,
		Password:            password,
		Debug:               debug,
	})

	client.AddHandler(handlers.Input)

	var channel string
	client.AddHandler(func(event *twirc.Event, client *twirc.Client) {
		switch event.Name() {

		// /target rebinds input without joining anything.
		case "input.target":
			channel = ircutil.Username(event.Text)
			log.Println("Set target channel", channel)

			event.Kill()
			return

		case "input.clientstatus":
			j, err := json.MarshalIndent(client.State(), "", "    ")
			if err != nil {
				return
			}

			fmt.Println(string(j))

			event.Kill()
			return

		case "client.connected":
			for _, name := range strings.Split(*flagJoin, ",") {
				if name == "" {
					continue
				}
				if err := client.Join(name); err != nil {
					log.Println("Failed to join", name, err)
				}
			}

		case "chat.join":
			if event.IsSelf {
				channel = event.Channel
				log.Println("Set target channel", channel)
			}

		case "chat.part":
			if event.IsSelf && event.Channel == channel {
				channel = ""
			}

		case "client.close":
			os.Exit(0)
		}

		j, err := json.MarshalIndent(event, "", "    ")
		if err != nil {
			return
		}

		fmt.Println(string(j))
	})

	err := client.Connect()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to connect: %s", err)
		os.Exit(1)
	}

	go func() {
		exitSignal := make(chan os.Signal, 1)
		signal.Notify(exitSignal, os.Interrupt, syscall.SIGTERM)

		<-exitSignal

		client.Destroy()
		os.Exit(0)
	}()

	reader := bufio.NewReader(os.Stdin)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			break
		}

		client.EmitInput(strings.TrimRight(line, "\r\n"), channel)
	}
}
