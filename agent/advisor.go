// Package agent provides the Gemini-backed assistant behind `cbt assist`.
package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

const instruction = `You are an assistant for a cost basis tracking tool.
You help the user understand their purchase lots, tax classification,
recurring purchase schedules, simulations and projections.
Ground every answer on the reports below. When a figure is not in the
reports, say so instead of guessing. You cannot place orders or give
personal tax advice.`

// Advisor is a chat session with the user's reports preloaded as context.
type Advisor struct {
	ModelName string
	Config    *genai.GenerateContentConfig
	chat      *genai.Chat
}

// NewAdvisor creates an advisor grounded on the given markdown reports.
func NewAdvisor(reports ...string) *Advisor {
	var b strings.Builder
	b.WriteString(instruction)
	for _, r := range reports {
		b.WriteString("\n\n---\n\n")
		b.WriteString(r)
	}
	return &Advisor{
		ModelName: defaultModel,
		Config: &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: b.String()}}},
		},
	}
}

// Start opens the chat session.
func (a *Advisor) Start(ctx context.Context, client *genai.Client) error {
	chat, err := client.Chats.Create(ctx, a.ModelName, a.Config, nil)
	if err != nil {
		return err
	}
	a.chat = chat
	return nil
}

// Ask sends one question and returns the advisor's text answer.
func (a *Advisor) Ask(ctx context.Context, question string) (string, error) {
	if a.chat == nil {
		return "", fmt.Errorf("advisor session not started")
	}
	resp, err := a.chat.Send(ctx, &genai.Part{Text: question})
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from the advisor")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

// Run drives an interactive session: an optional initial prompt, then a
// read-ask-print loop until EOF.
func (a *Advisor) Run(ctx context.Context, client *genai.Client, initialPrompt string, in io.Reader, out io.Writer) error {
	if err := a.Start(ctx, client); err != nil {
		return fmt.Errorf("could not start the advisor: %w", err)
	}

	if initialPrompt != "" {
		answer, err := a.Ask(ctx, initialPrompt)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, answer)
	}

	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, "> ")
	for scanner.Scan() {
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			fmt.Fprint(out, "> ")
			continue
		}
		answer, err := a.Ask(ctx, question)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, answer)
		fmt.Fprint(out, "> ")
	}
	return scanner.Err()
}
