package ollama

import (
	"context"
	"strings"

	"github.com/henfal/mdubot"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// DefaultChatModel is the model used to answer questions.
const DefaultChatModel = "llama3.1:8b"

// systemPrompt steers the chat model. The MDH wording matters: the
// university renamed itself from Mälardalens högskola (MDH) to Mälardalens
// universitet (MDU) in 2022, and models trained on older text tend to use
// the stale name.
const systemPrompt = `You are an assistant helping answer questions about university courses and programs at Mälardalens universitet (MDU).
Answer the question by:
- Providing relevant information from the context.
- Ensuring the response is accurate and helpful.
- Using the correct course or program codes when referring to specific courses or programs.
- Referring to the university as Mälardalens universitet or MDU. Do not use MDH or Mälardalens Högskola, as these are old abbreviations.
- Answering in the same language as the question.`

// Ensure Asker implements mdubot.Asker at compile time.
var _ mdubot.Asker = (*Asker)(nil)

// Asker answers questions about courses and programs using retrieved
// syllabus context and an Ollama chat model.
type Asker struct {
	llm    llms.Model
	search mdubot.SearchService
}

// AskerOption configures an Asker.
type AskerOption func(*askerConfig)

type askerConfig struct {
	model     string
	serverURL string
}

// WithChatModel sets the chat model. Defaults to llama3.1:8b.
func WithChatModel(model string) AskerOption {
	return func(c *askerConfig) {
		if model != "" {
			c.model = model
		}
	}
}

// WithChatServerURL sets the Ollama server URL.
func WithChatServerURL(url string) AskerOption {
	return func(c *askerConfig) {
		if url != "" {
			c.serverURL = url
		}
	}
}

// NewAsker creates an Asker backed by an Ollama server.
func NewAsker(search mdubot.SearchService, opts ...AskerOption) (*Asker, error) {
	config := &askerConfig{
		model:     DefaultChatModel,
		serverURL: DefaultServerURL,
	}
	for _, opt := range opts {
		opt(config)
	}

	llm, err := ollama.New(
		ollama.WithModel(config.model),
		ollama.WithServerURL(config.serverURL),
	)
	if err != nil {
		return nil, mdubot.Errorf(mdubot.EINTERNAL, "initialize ollama chat model: %v", err)
	}

	return &Asker{llm: llm, search: search}, nil
}

// Ask answers a question using retrieved syllabus context. Course codes
// mentioned in the question narrow retrieval to the first code's chunks;
// program codes are the fallback when no course code matches.
func (a *Asker) Ask(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", mdubot.Errorf(mdubot.EINVALID, "question required")
	}

	opts := searchOptions(question)
	results, err := a.search.Search(ctx, question, opts)
	if err != nil {
		return "", err
	}

	var user strings.Builder
	user.WriteString("Here is the context about the course or program:\n")
	user.WriteString(mdubot.FormatContext(results))
	user.WriteString("\n\nThis is the question: ")
	user.WriteString(question)

	response, err := a.llm.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, user.String()),
	})
	if err != nil {
		return "", mdubot.Errorf(mdubot.EUNAVAILABLE, "ollama generation failed: %v", err)
	}
	if response == nil || len(response.Choices) == 0 {
		return "", mdubot.Errorf(mdubot.EINTERNAL, "ollama returned no choices")
	}

	return response.Choices[0].Content, nil
}

// searchOptions derives retrieval options from the codes mentioned in the
// question. With N codes mentioned, N chunks are retrieved so each code's
// syllabus is represented.
func searchOptions(question string) mdubot.SearchOptions {
	if courseCodes := mdubot.DetectCourseCodes(question); len(courseCodes) > 0 {
		return mdubot.SearchOptions{CourseCode: courseCodes[0], Limit: len(courseCodes)}
	}
	if programCodes := mdubot.DetectProgramCodes(question); len(programCodes) > 0 {
		return mdubot.SearchOptions{ProgramCode: programCodes[0], Limit: len(programCodes)}
	}
	return mdubot.SearchOptions{}
}
