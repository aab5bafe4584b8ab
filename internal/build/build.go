// Package build holds values injected with -ldflags at release time.
package build

import "time"

var (
	commit  = ""
	date    = ""
	version = "dev"
	repoURL = "https://github.com/ItsNotGoodName/thriveremoteos"
)

var Current = newBuild(commit, date, version, repoURL)

func newBuild(commit, date, version, repoURL string) Build {
	b := Build{
		Commit:  commit,
		Version: version,
		RepoURL: repoURL,
	}
	b.Date, _ = time.Parse(time.RFC3339, date)

	if repoURL != "" {
		if commit != "" {
			b.CommitURL = repoURL + "/tree/" + commit
		}
		if version != "dev" {
			b.ReleaseURL = repoURL + "/releases/tag/" + version
		}
	}

	return b
}

type Build struct {
	Commit     string    `json:"commit,omitempty"`
	Version    string    `json:"version"`
	Date       time.Time `json:"date,omitempty"`
	RepoURL    string    `json:"repo_url,omitempty"`
	CommitURL  string    `json:"commit_url,omitempty"`
	ReleaseURL string    `json:"release_url,omitempty"`
}
