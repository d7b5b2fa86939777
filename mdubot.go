// Package mdubot provides a local CLI assistant for courses and programs at
// Mälardalens universitet (MDU). It crawls course syllabus ("kursplan") and
// program syllabus ("utbildningsplan") pages by numeric ID range, extracts
// structured syllabus data, indexes the text for semantic search with a local
// ollama embedding model, and answers natural language questions grounded in
// the indexed material.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, ollama/).
package mdubot
