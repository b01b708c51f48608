package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"

	"github.com/fatih/color"
)

const (
	baseURL = "http://localhost:3000/api"
)

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

// uploadSession posts a multipart session-creation request with one inline file.
func uploadSession(role, filename, content string) (*http.Response, []byte, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	writer.WriteField("role", role)
	part, err := writer.CreateFormFile("files", filename)
	if err != nil {
		return nil, nil, err
	}
	part.Write([]byte(content))
	writer.Close()

	req, err := http.NewRequest("POST", baseURL+"/chatbot/v1/session", &buf)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func main() {
	color.Cyan("🚀 Starting Chatbot API Smoke Test\n")

	// 1. Create a session from an inline document
	color.Yellow("\n1. Create Session (Product Lead)")
	resp, body, err := uploadSession(
		"Product Lead",
		"q3_report.txt",
		"Q3 transaction volume target is $15,000 per merchant. Daily user limit stays at 200 transfers.",
	)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var createResp map[string]interface{}
	json.Unmarshal(body, &createResp)
	prettyPrint(createResp)

	var sessionID string
	if data, ok := createResp["data"].(map[string]interface{}); ok {
		if id, ok := data["id"].(string); ok {
			sessionID = id
		}
	}
	if sessionID == "" {
		color.Red("No session id in response, aborting")
		os.Exit(1)
	}

	// 2. List sessions
	color.Yellow("\n2. List Sessions")
	resp, body, err = sendRequest("GET", "/chatbot/v1/session", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var listResp map[string]interface{}
	json.Unmarshal(body, &listResp)
	prettyPrint(listResp)

	// 3. Ask an on-role question
	color.Yellow("\n3. Send On-Role Question")
	resp, body, err = sendRequest("POST", "/chatbot/v1/session/"+sessionID+"/message", map[string]interface{}{
		"message": "What is the Q3 transaction volume target?",
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var answerResp map[string]interface{}
	json.Unmarshal(body, &answerResp)
	prettyPrint(answerResp)

	// 4. Ask an off-role question, should be rejected by the guardrail
	color.Yellow("\n4. Send Off-Role Question (expect rejection)")
	resp, body, err = sendRequest("POST", "/chatbot/v1/session/"+sessionID+"/message", map[string]interface{}{
		"message": "Why is the payments API returning 500 errors under load?",
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var rejectedResp map[string]interface{}
	json.Unmarshal(body, &rejectedResp)
	prettyPrint(rejectedResp)

	// 5. Fetch history, should contain 4 turns in order
	color.Yellow("\n5. Get History")
	resp, body, err = sendRequest("GET", "/chatbot/v1/session/"+sessionID+"/history", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var historyResp map[string]interface{}
	json.Unmarshal(body, &historyResp)
	prettyPrint(historyResp)

	color.Cyan("\n✨ Smoke test finished")
}
