package site

import (
	"net/url"
	"strings"

	"github.com/d4zhu/portfolio/internal/models"
)

// DefaultPages is the navigation bar of the site.
var DefaultPages = []models.Page{
	{URL: "/portfolio/", Title: "Home"},
	{URL: "/portfolio/projects/", Title: "Projects"},
	{URL: "/portfolio/contact/", Title: "Contact"},
	{URL: "/portfolio/resume/", Title: "Resume"},
	{URL: "/portfolio/meta/", Title: "Meta"},
	{URL: "https://github.com/d4zhu", Title: "Github"},
}

// NavLink is a rendered navigation entry.
type NavLink struct {
	URL      string
	Title    string
	Current  bool
	External bool
}

// Nav resolves pages against the current request. A link is current when
// it points at the current path on the same host; "dir/" and
// "dir/index.html" are the same page. Links to another host open in a
// new tab.
func Nav(pages []models.Page, host, currentPath string) []NavLink {
	links := make([]NavLink, 0, len(pages))
	for _, p := range pages {
		link := NavLink{URL: p.URL, Title: p.Title}

		u, err := url.Parse(p.URL)
		if err != nil {
			links = append(links, link)
			continue
		}

		sameHost := u.Host == "" || strings.EqualFold(u.Host, host)
		link.External = !sameHost
		link.Current = sameHost && samePage(u.Path, currentPath)

		links = append(links, link)
	}
	return links
}

func samePage(a, b string) bool {
	return canonicalPath(a) == canonicalPath(b)
}

func canonicalPath(p string) string {
	if p == "" {
		p = "/"
	}
	if strings.HasSuffix(p, "/index.html") {
		p = strings.TrimSuffix(p, "index.html")
	}
	return p
}
