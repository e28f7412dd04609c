package agent

type options struct {
	llm           LLMClient
	dispatcher    Dispatcher
	personaPrompt string
	maxToolDepth  int
	obs           Observer
}

func defaultOptions() options {
	return options{
		maxToolDepth: 10,
		obs:          noopObserver{},
	}
}

type Option func(*options)

func WithLLM(llm LLMClient) Option {
	return func(o *options) { o.llm = llm }
}

func WithDispatcher(d Dispatcher) Option {
	return func(o *options) { o.dispatcher = d }
}

// WithPersonaPrompt sets the behavioral prefix prepended to every request.
func WithPersonaPrompt(prompt string) Option {
	return func(o *options) { o.personaPrompt = prompt }
}

// WithMaxToolDepth bounds how many tool round trips one Chat call may make.
func WithMaxToolDepth(n int) Option {
	return func(o *options) { o.maxToolDepth = n }
}

func WithObserver(obs Observer) Option {
	return func(o *options) { o.obs = obs }
}
