package widgets

import "strings"

// CleanCodeBlock strips markdown code fences from streamed file content.
// Models wrap file bodies in ``` or ```` fences (the latter for documents
// that themselves contain fenced blocks); the fences and any language
// specifier are not part of the file. For ````-fenced documents a leading
// YAML front-matter block is also removed.
func CleanCodeBlock(content string) string {
	if strings.TrimSpace(content) == "" {
		return content
	}

	if strings.Contains(content, "````") {
		return strings.TrimSpace(cleanFenced(content, "````", true))
	}
	if strings.Contains(content, "```") {
		return strings.TrimSpace(cleanFenced(content, "```", false))
	}
	return content
}

func cleanFenced(content, fence string, stripFrontMatter bool) string {
	start := strings.Index(content, fence)
	end := strings.LastIndex(content, fence)
	if start == end {
		return content
	}

	// Skip the opening fence line (which may carry a language specifier).
	firstLineEnd := strings.IndexByte(content[start:], '\n')
	if firstLineEnd == -1 || start+firstLineEnd+1 > end {
		return content
	}
	extracted := content[start+firstLineEnd+1 : end]

	if stripFrontMatter && strings.HasPrefix(extracted, "---\n") {
		if yamlEnd := strings.Index(extracted, "\n---\n"); yamlEnd != -1 {
			extracted = extracted[yamlEnd+len("\n---\n"):]
		}
	}
	return extracted
}
