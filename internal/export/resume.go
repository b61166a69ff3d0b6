package export

import (
	"encoding/base64"
	"fmt"
	"strings"

	"hirepanel/internal/applicant"
)

// PlaceholderBanner heads every generated resume stand-in.
const PlaceholderBanner = "GENERATED PLACEHOLDER - NOT AN UPLOADED RESUME"

// Resume returns the candidate's uploaded resume, or a labelled plain-text
// stand-in when none was uploaded or the payload cannot be decoded.
func Resume(a applicant.Application) File {
	if a.ResumeFile != nil && a.ResumeFile.Content != "" {
		if data, err := decodeContent(a.ResumeFile.Content); err == nil {
			name := a.ResumeFile.Name
			if name == "" {
				name = safeName(a.CandidateName) + "_Resume"
			}
			mime := a.ResumeFile.MIMEType
			if mime == "" {
				mime = "application/octet-stream"
			}
			return File{Name: name, MIMEType: mime, Data: data}
		}
	}
	return placeholderResume(a)
}

// decodeContent accepts raw base64 or a data URL.
func decodeContent(content string) ([]byte, error) {
	if strings.HasPrefix(content, "data:") {
		i := strings.Index(content, ",")
		if i < 0 {
			return nil, fmt.Errorf("malformed data url")
		}
		content = content[i+1:]
	}
	return base64.StdEncoding.DecodeString(strings.TrimSpace(content))
}

func placeholderResume(a applicant.Application) File {
	var b strings.Builder
	b.WriteString(PlaceholderBanner + "\n")
	b.WriteString("This file was generated because the candidate's resume is not available.\n\n")
	fmt.Fprintf(&b, "Candidate: %s\n", orUnknown(a.CandidateName))
	fmt.Fprintf(&b, "Role: %s\n", orUnknown(a.JobTitle))
	fmt.Fprintf(&b, "Email: %s\n", orUnknown(a.CandidateEmail))
	return File{
		Name:        safeName(a.CandidateName) + "_Resume_PLACEHOLDER.txt",
		MIMEType:    "text/plain",
		Data:        []byte(b.String()),
		Placeholder: true,
	}
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "(unknown)"
	}
	return s
}

// safeName turns a display name into a file-name fragment.
func safeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Candidate"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r == ' ':
			return '_'
		case strings.ContainsRune(`/\:*?"<>|`, r):
			return -1
		}
		return r
	}, name)
}
