package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func main() {
	var (
		serverURL    string
		pollInterval time.Duration
		downloadDir  string
	)

	rootCmd := &cobra.Command{
		Use:          "pulsechat",
		Short:        "Interactive pulsechat client",
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runREPL(newAPI(serverURL), pollInterval, downloadDir)
		},
	}

	rootCmd.Flags().StringVar(&serverURL, "server", "http://localhost:3000", "server base URL")
	rootCmd.Flags().DurationVar(&pollInterval, "poll-interval", 2*time.Second, "how often to poll for messages and files")
	rootCmd.Flags().StringVar(&downloadDir, "download-dir", ".", "directory for received files")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

const helpText = `commands:
  ping                      check the server
  echo <text>               echo text off the server
  login <name>              log in under a name
  logout                    log out
  users                     list logged-in users
  send <user> <text...>     send a message
  sendfile <user> <path>    send a local file
  help                      show this help
  exit                      quit`

func runREPL(client *api, pollInterval time.Duration, downloadDir string) error {
	var polls poller
	defer polls.Stop()

	fmt.Println(helpText)
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "ping":
			reply, err := client.Ping()
			printResult(reply, err)
		case "echo":
			reply, err := client.Echo(strings.Join(fields[1:], " "))
			printResult(reply, err)
		case "login":
			if len(fields) != 2 {
				fmt.Println("usage: login <name>")
				continue
			}
			// A leftover loop from an earlier login would keep polling
			// under the old identity.
			polls.Stop()
			reply, err := client.Login(fields[1])
			printResult(reply, err)
			if err == nil {
				polls.Start(func(stop <-chan struct{}) {
					pollLoop(client, pollInterval, downloadDir, stop)
				})
			}
		case "logout":
			polls.Stop()
			reply, err := client.Logout()
			printResult(reply, err)
		case "users":
			users, err := client.Users()
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			fmt.Println("Logged in users:", strings.Join(users, ", "))
		case "send":
			if len(fields) < 3 {
				fmt.Println("usage: send <user> <text...>")
				continue
			}
			reply, err := client.SendMessage(fields[1], strings.Join(fields[2:], " "))
			printResult(reply, err)
		case "sendfile":
			if len(fields) != 3 {
				fmt.Println("usage: sendfile <user> <path>")
				continue
			}
			content, err := os.ReadFile(fields[2])
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			reply, err := client.SendFile(fields[1], filepath.Base(fields[2]), string(content))
			printResult(reply, err)
		case "help":
			fmt.Println(helpText)
		case "exit", "quit":
			polls.Stop()
			if client.identity != "" {
				_, _ = client.Logout()
			}
			return nil
		default:
			fmt.Println("unknown command; try 'help'")
		}
	}
}

func printResult(reply string, err error) {
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(reply)
}

// pollLoop drains messages and files at a fixed interval until stopped,
// mirroring the pull-based delivery contract. Received files are written to
// downloadDir under their advertised name.
func pollLoop(client *api, interval time.Duration, downloadDir string, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			messages, err := client.PollMessages()
			if err == nil {
				for _, msg := range messages {
					fmt.Printf("\n[Message from %s] %s\n> ", msg.From, msg.Text)
				}
			}

			files, err := client.PollFiles()
			if err != nil {
				continue
			}
			for _, file := range files {
				// Strip any path the sender smuggled into the name.
				name := filepath.Base(file.Filename)
				target := filepath.Join(downloadDir, name)
				if writeErr := os.WriteFile(target, []byte(file.Content), 0o644); writeErr != nil {
					fmt.Printf("\n[File from %s] failed to save %s: %v\n> ", file.From, name, writeErr)
					continue
				}
				fmt.Printf("\n[File received] %s from %s\n> ", name, file.From)
			}
		}
	}
}
