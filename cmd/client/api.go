package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// api is a thin client for the pulsechat wire contract. The identity header
// is attached to every call made while logged in.
type api struct {
	baseURL  string
	identity string
	http     *http.Client
}

func newAPI(baseURL string) *api {
	return &api{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type messageResponse struct {
	Message  string `json:"message"`
	Response string `json:"response"`
	Error    string `json:"error"`
}

type usersResponse struct {
	Users []string `json:"users"`
}

type polledMessage struct {
	From string `json:"from"`
	Text string `json:"text"`
}

type messagesResponse struct {
	Messages []polledMessage `json:"messages"`
}

type polledFile struct {
	From     string `json:"from"`
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

type filesResponse struct {
	Files []polledFile `json:"files"`
}

func (a *api) call(method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, a.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if a.identity != "" {
		req.Header.Set("X-Username", a.identity)
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		var failure messageResponse
		if json.Unmarshal(data, &failure) == nil && failure.Error != "" {
			return fmt.Errorf("%s", failure.Error)
		}
		return fmt.Errorf("server returned %s", resp.Status)
	}

	if out != nil {
		return json.Unmarshal(data, out)
	}
	return nil
}

func (a *api) Ping() (string, error) {
	var out messageResponse
	err := a.call(http.MethodGet, "/ping", nil, &out)
	return out.Response, err
}

func (a *api) Echo(text string) (string, error) {
	var out messageResponse
	err := a.call(http.MethodPost, "/echo", map[string]string{"text": text}, &out)
	return out.Response, err
}

func (a *api) Login(username string) (string, error) {
	var out messageResponse
	if err := a.call(http.MethodPost, "/login", map[string]string{"username": username}, &out); err != nil {
		return "", err
	}
	a.identity = username
	return out.Message, nil
}

func (a *api) Logout() (string, error) {
	var out messageResponse
	if err := a.call(http.MethodPost, "/logout", nil, &out); err != nil {
		return "", err
	}
	a.identity = ""
	return out.Message, nil
}

func (a *api) Users() ([]string, error) {
	var out usersResponse
	err := a.call(http.MethodGet, "/users", nil, &out)
	return out.Users, err
}

func (a *api) SendMessage(to, text string) (string, error) {
	var out messageResponse
	err := a.call(http.MethodPost, "/message", map[string]string{"to": to, "text": text}, &out)
	return out.Message, err
}

func (a *api) SendFile(to, filename, content string) (string, error) {
	body := map[string]string{"to": to, "filename": filename, "content": content}
	var out messageResponse
	err := a.call(http.MethodPost, "/file", body, &out)
	return out.Message, err
}

func (a *api) PollMessages() ([]polledMessage, error) {
	var out messagesResponse
	err := a.call(http.MethodGet, "/messages", nil, &out)
	return out.Messages, err
}

func (a *api) PollFiles() ([]polledFile, error) {
	var out filesResponse
	err := a.call(http.MethodGet, "/files", nil, &out)
	return out.Files, err
}
