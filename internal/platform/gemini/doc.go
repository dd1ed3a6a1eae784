// Package gemini provides the Google Gemini adapters of the service using the
// google.golang.org/genai client library.
//
// This package is an infrastructure adapter in the hexagonal architecture,
// connecting the application's generation and moderation ports to Google's
// external Gemini AI service without exposing the details of the SDK to the
// core application.
//
// Key components:
//
// 1. Provider:
//   - Implements the generation.Provider interface
//   - Forces JSON output and translates the shape descriptor into a genai
//     response schema
//   - Maps blocked or truncated responses to generation errors
//
// 2. Moderator:
//   - Implements the moderation.Classifier interface
//   - Sends the input with strict safety settings; a blocked prompt or a
//     SAFETY finish reason counts as flagged
package gemini
