// Package gemini implements the generation.Generator interface using
// Google's Gemini API, selectable via llm.provider=gemini.
package gemini
