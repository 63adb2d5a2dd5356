package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	meetingdto "github.com/meetinglabs/meeting-summarizer/internal/adapter/dto/meeting"
)

// envelope mirrors the server's success response shape
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type client struct {
	baseURL string
	http    *http.Client
}

func main() {
	server := flag.String("server", "http://127.0.0.1:8080", "meeting summarizer API base URL")
	audio := flag.String("audio", "", "path to an audio file to analyze before chatting")
	flag.Parse()

	c := &client{
		baseURL: strings.TrimRight(*server, "/"),
		http:    &http.Client{Timeout: 10 * time.Minute},
	}

	var meetingID *int64

	if *audio != "" {
		fmt.Printf("Uploading %s ...\n", *audio)
		result, err := c.summarize(*audio)
		if err != nil {
			log.Fatalf("Failed to process meeting: %v", err)
		}
		printMeeting(result)
		meetingID = &result.ID
		fmt.Println("I've analyzed your meeting! Here's the summary and you can ask me questions about it.")
	} else {
		fmt.Println("No audio file given. Ask general questions about meeting summarization,")
		fmt.Println("or restart with -audio <file> to analyze a meeting.")
	}

	fmt.Println(`Type a question and press Enter ("new" drops the meeting context, "quit" exits).`)

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 64*1024)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			continue
		case strings.EqualFold(line, "quit"), strings.EqualFold(line, "exit"):
			return
		case strings.EqualFold(line, "new"):
			meetingID = nil
			fmt.Println("Meeting context cleared.")
			continue
		}

		answer, err := c.ask(line, meetingID)
		if err != nil {
			fmt.Printf("Sorry, I encountered an error: %v\n", err)
			continue
		}
		fmt.Println(answer)
	}
}

// summarize uploads one audio file and returns the pipeline result
func (c *client) summarize(path string) (*meetingdto.MeetingResponse, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("audio", filepath.Base(path))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/meeting/summarize", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var result meetingdto.MeetingResponse
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ask sends one chat question, grounded in the current meeting when set
func (c *client) ask(question string, meetingID *int64) (string, error) {
	payload, err := json.Marshal(meetingdto.ChatRequest{
		Question:  question,
		MeetingID: meetingID,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/meeting/chat", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	var result meetingdto.ChatResponse
	if err := c.do(req, &result); err != nil {
		return "", err
	}
	return result.Answer, nil
}

// do executes the request and decodes the data field of the envelope
func (c *client) do(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		var failure struct {
			Message string `json:"message"`
			Info    string `json:"info"`
		}
		if json.Unmarshal(raw, &failure) == nil && failure.Message != "" {
			return fmt.Errorf("%s (%s)", failure.Message, failure.Info)
		}
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return json.Unmarshal(env.Data, out)
}

func printMeeting(result *meetingdto.MeetingResponse) {
	fmt.Println()
	fmt.Printf("Meeting #%d: %s\n", result.ID, result.Filename)
	fmt.Printf("%s\n\n", result.Message)

	fmt.Println("Summary:")
	fmt.Printf("  %s\n\n", result.Summary.Summary)

	fmt.Println("Key Decisions:")
	if len(result.Summary.KeyDecisions) == 0 {
		fmt.Println("  No decisions recorded")
	}
	for i, decision := range result.Summary.KeyDecisions {
		fmt.Printf("  %d. %s\n", i+1, decision)
	}
	fmt.Println()

	fmt.Println("Action Items:")
	if len(result.Summary.ActionItems) == 0 {
		fmt.Println("  No action items identified")
	}
	for i, item := range result.Summary.ActionItems {
		fmt.Printf("  %d. %s (assignee: %s, deadline: %s)\n", i+1, item.Task, item.Assignee, item.Deadline)
	}
	fmt.Println()
}
