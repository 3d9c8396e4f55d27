/*-------------------------------------------------------------------------
 *
 * chat.go
 *    Chat command: terminal conversation with the support agent
 *
 * Posts each line to the running server's /chat endpoint with the
 * given customer's User-ID header and prints the reply.
 *
 * Copyright (c) 2024-2026, ShopSmart, Inc. <platform@shopsmart.dev>
 *
 * IDENTIFICATION
 *    shopsmart-retail-agent/cmd/supportctl/chat.go
 *
 *-------------------------------------------------------------------------
 */

package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	chatServerURL string
	chatUserID    string
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the support agent from the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		if chatUserID == "" {
			return fmt.Errorf("--user is required (customer UUID)")
		}
		return runChat()
	},
}

func init() {
	chatCmd.Flags().StringVar(&chatServerURL, "server", "http://localhost:8080", "Support server URL")
	chatCmd.Flags().StringVar(&chatUserID, "user", "", "Customer UUID to chat as")
}

func runChat() error {
	client := &http.Client{Timeout: 3 * time.Minute}
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Println("Connected to ShopSmart support. Type a message, or 'quit' to exit.")
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}

		reply, err := sendChat(client, line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		fmt.Println(reply)
	}
	return scanner.Err()
}

func sendChat(client *http.Client, message string) (string, error) {
	body, err := json.Marshal(map[string]string{"message": message})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, chatServerURL+"/chat", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-ID", chatUserID)

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat failed: status='%s', body='%s'", resp.Status, string(payload))
	}

	var out struct {
		Reply string `json:"reply"`
	}
	if err := json.Unmarshal(payload, &out); err != nil {
		return "", err
	}
	return out.Reply, nil
}
