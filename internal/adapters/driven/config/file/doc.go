// Package file provides file-based configuration storage for sitechat.
//
// Configuration lives in a TOML file under the sitechat config
// directory (~/.sitechat by default). Unset keys fall back to the
// defaults declared here; the OpenAI API key additionally falls back
// to the OPENAI_API_KEY environment variable.
package file
