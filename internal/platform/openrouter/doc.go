// Package openrouter implements the generation.Generator interface using
// the OpenRouter chat-completions API. It is the default provider backend;
// see internal/platform/gemini for the alternative.
package openrouter
