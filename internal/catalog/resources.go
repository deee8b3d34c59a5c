package catalog

import (
	"strconv"

	"site-admin/internal/display"
	"site-admin/internal/domain"
	"site-admin/internal/listview"
)

var (
	newestFirst = listview.Sort{Field: "createdAt", Desc: true}
	byOrder     = listview.Sort{Field: "order"}
	byName      = listview.Sort{Field: "name"}
)

func statusCell(p domain.Publishable) string {
	return display.PublishedIcon(p.IsPublished()) + " " + display.StatusLabel(p.IsPublished())
}

func featuredCell(f domain.Featurable) string {
	return display.FeaturedIcon(f.IsFeatured())
}

func updatedCell(s domain.Stamped) string {
	return display.FormatDate(s.Times().UpdatedAt)
}

var Posts = Bind(Spec[domain.Post]{
	Name:     "posts",
	Singular: "Post",
	Plural:   "Posts",
	Aliases:  []string{"post", "blog"},
	Schema: domain.Schema{Fields: []domain.Field{
		{Name: "title", Label: "Title", Kind: domain.KindText, Required: true, MaxLen: 200},
		{Name: "slug", Label: "Slug", Kind: domain.KindText, Required: true, MaxLen: 200, Hint: "lowercase-with-dashes"},
		{Name: "excerpt", Label: "Excerpt", Kind: domain.KindLongText, MaxLen: 500},
		{Name: "content", Label: "Content", Kind: domain.KindLongText, Required: true},
		{Name: "coverImage", Label: "Cover image", Kind: domain.KindURL},
		{Name: "category", Label: "Category", Kind: domain.KindText, Hint: "category id"},
		{Name: "tags", Label: "Tags", Kind: domain.KindList, Hint: "comma separated tag ids"},
		{Name: "author", Label: "Author", Kind: domain.KindText, MaxLen: 100},
		{Name: "published", Label: "Published", Kind: domain.KindBool},
		{Name: "featured", Label: "Featured", Kind: domain.KindBool},
	}},
	Columns: []listview.Column[domain.Post]{
		{Key: "title", Title: "Title", Width: 32, SortField: "title", Cell: func(p domain.Post) string { return p.Title }},
		{Key: "status", Title: "Status", Width: 12, SortField: "published", Cell: func(p domain.Post) string { return statusCell(p) }},
		{Key: "featured", Title: "★", Width: 2, SortField: "featured", Cell: func(p domain.Post) string { return featuredCell(p) }},
		{Key: "category", Title: "Category", Width: 14, Hideable: true, Cell: func(p domain.Post) string { return p.Category }},
		{Key: "tags", Title: "Tags", Width: 18, Hideable: true, Cell: func(p domain.Post) string { return display.JoinList(p.Tags) }},
		{Key: "author", Title: "Author", Width: 14, Hideable: true, SortField: "author", Cell: func(p domain.Post) string { return p.Author }},
		{Key: "updated", Title: "Updated", Width: 10, SortField: "updatedAt", Cell: func(p domain.Post) string { return updatedCell(p) }},
	},
	Facets:      []listview.Facet{listview.FacetCategory, listview.FacetTag, listview.FacetPublished, listview.FacetFeatured},
	Paging:      ServerPaging,
	DefaultSort: newestFirst,
	Label:       func(p domain.Post) string { return p.Title },
	Extra: func(p domain.Post) []DetailRow {
		return []DetailRow{{Label: "Published at", Value: display.FormatDateTime(p.PublishedAt)}}
	},
})

var Categories = Bind(Spec[domain.Category]{
	Name:     "categories",
	Singular: "Category",
	Plural:   "Categories",
	Aliases:  []string{"category"},
	Schema: domain.Schema{Fields: []domain.Field{
		{Name: "name", Label: "Name", Kind: domain.KindText, Required: true, MaxLen: 100},
		{Name: "slug", Label: "Slug", Kind: domain.KindText, Required: true, MaxLen: 100},
		{Name: "description", Label: "Description", Kind: domain.KindLongText, MaxLen: 500},
	}},
	Columns: []listview.Column[domain.Category]{
		{Key: "name", Title: "Name", Width: 24, SortField: "name", Cell: func(c domain.Category) string { return c.Name }},
		{Key: "slug", Title: "Slug", Width: 20, SortField: "slug", Cell: func(c domain.Category) string { return c.Slug }},
		{Key: "posts", Title: "Posts", Width: 6, SortField: "postCount", Cell: func(c domain.Category) string { return strconv.Itoa(c.PostCount) }},
		{Key: "description", Title: "Description", Width: 36, Hideable: true, Cell: func(c domain.Category) string { return c.Description }},
	},
	Paging:      LocalPaging,
	DefaultSort: byName,
	Label:       func(c domain.Category) string { return c.Name },
	Extra: func(c domain.Category) []DetailRow {
		return []DetailRow{{Label: "Posts", Value: strconv.Itoa(c.PostCount)}}
	},
})

var Tags = Bind(Spec[domain.Tag]{
	Name:     "tags",
	Singular: "Tag",
	Plural:   "Tags",
	Aliases:  []string{"tag"},
	Schema: domain.Schema{Fields: []domain.Field{
		{Name: "name", Label: "Name", Kind: domain.KindText, Required: true, MaxLen: 50},
		{Name: "slug", Label: "Slug", Kind: domain.KindText, Required: true, MaxLen: 50},
	}},
	Columns: []listview.Column[domain.Tag]{
		{Key: "name", Title: "Name", Width: 24, SortField: "name", Cell: func(t domain.Tag) string { return t.Name }},
		{Key: "slug", Title: "Slug", Width: 24, SortField: "slug", Cell: func(t domain.Tag) string { return t.Slug }},
		{Key: "updated", Title: "Updated", Width: 10, SortField: "updatedAt", Cell: func(t domain.Tag) string { return updatedCell(t) }},
	},
	Paging:      LocalPaging,
	DefaultSort: byName,
	Label:       func(t domain.Tag) string { return t.Name },
})

var Clients = Bind(Spec[domain.Client]{
	Name:     "clients",
	Singular: "Client",
	Plural:   "Clients",
	Aliases:  []string{"client"},
	Schema: domain.Schema{Fields: []domain.Field{
		{Name: "name", Label: "Name", Kind: domain.KindText, Required: true, MaxLen: 100},
		{Name: "logo", Label: "Logo", Kind: domain.KindURL},
		{Name: "website", Label: "Website", Kind: domain.KindURL},
		{Name: "industry", Label: "Industry", Kind: domain.KindText, MaxLen: 100},
		{Name: "featured", Label: "Featured", Kind: domain.KindBool},
		{Name: "order", Label: "Order", Kind: domain.KindInt, Min: 0, Max: 1000},
	}},
	Columns: []listview.Column[domain.Client]{
		{Key: "name", Title: "Name", Width: 24, SortField: "name", Cell: func(c domain.Client) string { return c.Name }},
		{Key: "industry", Title: "Industry", Width: 18, SortField: "industry", Cell: func(c domain.Client) string { return c.Industry }},
		{Key: "website", Title: "Website", Width: 28, Hideable: true, Cell: func(c domain.Client) string { return c.Website }},
		{Key: "featured", Title: "★", Width: 2, SortField: "featured", Cell: func(c domain.Client) string { return featuredCell(c) }},
		{Key: "order", Title: "Order", Width: 5, SortField: "order", Cell: func(c domain.Client) string { return strconv.Itoa(c.Order) }},
	},
	Facets:      []listview.Facet{listview.FacetFeatured},
	Paging:      LocalPaging,
	DefaultSort: byOrder,
	Label:       func(c domain.Client) string { return c.Name },
})

var Contacts = Bind(Spec[domain.Contact]{
	Name:     "contacts",
	Singular: "Contact",
	Plural:   "Contacts",
	Aliases:  []string{"contact", "messages", "inbox"},
	Schema: domain.Schema{Fields: []domain.Field{
		{Name: "name", Label: "Name", Kind: domain.KindText, Required: true, MaxLen: 100},
		{Name: "email", Label: "Email", Kind: domain.KindEmail, Required: true},
		{Name: "phone", Label: "Phone", Kind: domain.KindText, MaxLen: 30},
		{Name: "subject", Label: "Subject", Kind: domain.KindText, MaxLen: 200},
		{Name: "message", Label: "Message", Kind: domain.KindLongText, Required: true, MaxLen: 5000},
		{Name: "status", Label: "Status", Kind: domain.KindEnum, Options: []string{
			string(domain.ContactNew), string(domain.ContactRead), string(domain.ContactReplied), string(domain.ContactArchived),
		}},
	}},
	Columns: []listview.Column[domain.Contact]{
		{Key: "name", Title: "Name", Width: 20, SortField: "name", Cell: func(c domain.Contact) string { return c.Name }},
		{Key: "email", Title: "Email", Width: 26, SortField: "email", Cell: func(c domain.Contact) string { return c.Email }},
		{Key: "subject", Title: "Subject", Width: 28, Hideable: true, Cell: func(c domain.Contact) string { return c.Subject }},
		{Key: "status", Title: "Status", Width: 9, SortField: "status", Cell: func(c domain.Contact) string { return string(c.Status) }},
		{Key: "received", Title: "Received", Width: 10, SortField: "createdAt", Cell: func(c domain.Contact) string { return display.FormatDate(c.CreatedAt) }},
	},
	Paging:      LocalPaging,
	DefaultSort: newestFirst,
	Label:       func(c domain.Contact) string { return c.Name },
})

var FAQs = Bind(Spec[domain.FAQ]{
	Name:     "faqs",
	Singular: "FAQ",
	Plural:   "FAQs",
	Aliases:  []string{"faq"},
	Schema: domain.Schema{Fields: []domain.Field{
		{Name: "question", Label: "Question", Kind: domain.KindText, Required: true, MaxLen: 300},
		{Name: "answer", Label: "Answer", Kind: domain.KindLongText, Required: true, MaxLen: 5000},
		{Name: "category", Label: "Category", Kind: domain.KindText, MaxLen: 100},
		{Name: "order", Label: "Order", Kind: domain.KindInt, Min: 0, Max: 1000},
		{Name: "published", Label: "Published", Kind: domain.KindBool},
	}},
	Columns: []listview.Column[domain.FAQ]{
		{Key: "question", Title: "Question", Width: 40, SortField: "question", Cell: func(f domain.FAQ) string { return f.Question }},
		{Key: "category", Title: "Category", Width: 16, SortField: "category", Hideable: true, Cell: func(f domain.FAQ) string { return f.Category }},
		{Key: "order", Title: "Order", Width: 5, SortField: "order", Cell: func(f domain.FAQ) string { return strconv.Itoa(f.Order) }},
		{Key: "status", Title: "Status", Width: 12, SortField: "published", Cell: func(f domain.FAQ) string { return statusCell(f) }},
	},
	Facets:      []listview.Facet{listview.FacetPublished},
	Paging:      LocalPaging,
	DefaultSort: byOrder,
	Label:       func(f domain.FAQ) string { return f.Question },
})

var Team = Bind(Spec[domain.TeamMember]{
	Name:     "team",
	Singular: "Team member",
	Plural:   "Team",
	Aliases:  []string{"team-members", "members", "member"},
	Schema: domain.Schema{Fields: []domain.Field{
		{Name: "name", Label: "Name", Kind: domain.KindText, Required: true, MaxLen: 100},
		{Name: "role", Label: "Role", Kind: domain.KindText, Required: true, MaxLen: 100},
		{Name: "bio", Label: "Bio", Kind: domain.KindLongText, MaxLen: 2000},
		{Name: "photo", Label: "Photo", Kind: domain.KindURL},
		{Name: "email", Label: "Email", Kind: domain.KindEmail},
		{Name: "order", Label: "Order", Kind: domain.KindInt, Min: 0, Max: 1000},
		{Name: "published", Label: "Published", Kind: domain.KindBool},
	}},
	Columns: []listview.Column[domain.TeamMember]{
		{Key: "name", Title: "Name", Width: 22, SortField: "name", Cell: func(m domain.TeamMember) string { return m.Name }},
		{Key: "role", Title: "Role", Width: 20, SortField: "role", Cell: func(m domain.TeamMember) string { return m.Role }},
		{Key: "social", Title: "Social", Width: 12, Hideable: true, Cell: socialGlyphs},
		{Key: "order", Title: "Order", Width: 5, SortField: "order", Cell: func(m domain.TeamMember) string { return strconv.Itoa(m.Order) }},
		{Key: "status", Title: "Status", Width: 12, SortField: "published", Cell: func(m domain.TeamMember) string { return statusCell(m) }},
	},
	Facets:      []listview.Facet{listview.FacetPublished},
	Paging:      LocalPaging,
	DefaultSort: byOrder,
	Label:       func(m domain.TeamMember) string { return m.Name },
	Extra: func(m domain.TeamMember) []DetailRow {
		rows := make([]DetailRow, 0, len(m.SocialLinks))
		for _, s := range m.SocialLinks {
			rows = append(rows, DetailRow{Label: display.IconLabel(s.Platform), Value: s.URL})
		}
		return rows
	},
})

func socialGlyphs(m domain.TeamMember) string {
	s := ""
	for i, link := range m.SocialLinks {
		if i > 0 {
			s += " "
		}
		s += display.IconGlyph(link.Platform)
	}
	return s
}

var Testimonials = Bind(Spec[domain.Testimonial]{
	Name:     "testimonials",
	Singular: "Testimonial",
	Plural:   "Testimonials",
	Aliases:  []string{"testimonial", "reviews"},
	Schema: domain.Schema{Fields: []domain.Field{
		{Name: "author", Label: "Author", Kind: domain.KindText, Required: true, MaxLen: 100},
		{Name: "company", Label: "Company", Kind: domain.KindText, MaxLen: 100},
		{Name: "role", Label: "Role", Kind: domain.KindText, MaxLen: 100},
		{Name: "quote", Label: "Quote", Kind: domain.KindLongText, Required: true, MaxLen: 1000},
		{Name: "rating", Label: "Rating", Kind: domain.KindInt, Min: 1, Max: 5},
		{Name: "avatar", Label: "Avatar", Kind: domain.KindURL},
		{Name: "featured", Label: "Featured", Kind: domain.KindBool},
		{Name: "published", Label: "Published", Kind: domain.KindBool},
	}},
	Columns: []listview.Column[domain.Testimonial]{
		{Key: "author", Title: "Author", Width: 20, SortField: "author", Cell: func(t domain.Testimonial) string { return t.Author }},
		{Key: "company", Title: "Company", Width: 18, SortField: "company", Hideable: true, Cell: func(t domain.Testimonial) string { return t.Company }},
		{Key: "rating", Title: "Rating", Width: 5, SortField: "rating", Cell: func(t domain.Testimonial) string { return display.FormatRating(t.Rating) }},
		{Key: "featured", Title: "★", Width: 2, SortField: "featured", Cell: func(t domain.Testimonial) string { return featuredCell(t) }},
		{Key: "status", Title: "Status", Width: 12, SortField: "published", Cell: func(t domain.Testimonial) string { return statusCell(t) }},
	},
	Facets:      []listview.Facet{listview.FacetPublished, listview.FacetFeatured},
	Paging:      LocalPaging,
	DefaultSort: newestFirst,
	Label:       func(t domain.Testimonial) string { return t.Author },
})

var Services = Bind(Spec[domain.Service]{
	Name:     "services",
	Singular: "Service",
	Plural:   "Services",
	Aliases:  []string{"service"},
	Schema: domain.Schema{Fields: []domain.Field{
		{Name: "title", Label: "Title", Kind: domain.KindText, Required: true, MaxLen: 100},
		{Name: "slug", Label: "Slug", Kind: domain.KindText, Required: true, MaxLen: 100},
		{Name: "summary", Label: "Summary", Kind: domain.KindText, Required: true, MaxLen: 300},
		{Name: "description", Label: "Description", Kind: domain.KindLongText, MaxLen: 5000},
		{Name: "icon", Label: "Icon", Kind: domain.KindIcon},
		{Name: "features", Label: "Features", Kind: domain.KindList, Hint: "comma separated"},
		{Name: "order", Label: "Order", Kind: domain.KindInt, Min: 0, Max: 1000},
		{Name: "published", Label: "Published", Kind: domain.KindBool},
	}},
	Columns: []listview.Column[domain.Service]{
		{Key: "icon", Title: "", Width: 3, Cell: func(s domain.Service) string { return display.IconGlyph(s.Icon) }},
		{Key: "title", Title: "Title", Width: 24, SortField: "title", Cell: func(s domain.Service) string { return s.Title }},
		{Key: "summary", Title: "Summary", Width: 36, Hideable: true, Cell: func(s domain.Service) string { return s.Summary }},
		{Key: "order", Title: "Order", Width: 5, SortField: "order", Cell: func(s domain.Service) string { return strconv.Itoa(s.Order) }},
		{Key: "status", Title: "Status", Width: 12, SortField: "published", Cell: func(s domain.Service) string { return statusCell(s) }},
	},
	Facets:      []listview.Facet{listview.FacetPublished},
	Paging:      LocalPaging,
	DefaultSort: byOrder,
	Label:       func(s domain.Service) string { return s.Title },
})

var Projects = Bind(Spec[domain.Project]{
	Name:     "projects",
	Singular: "Project",
	Plural:   "Projects",
	Aliases:  []string{"project", "portfolio", "work"},
	Schema: domain.Schema{Fields: []domain.Field{
		{Name: "title", Label: "Title", Kind: domain.KindText, Required: true, MaxLen: 200},
		{Name: "slug", Label: "Slug", Kind: domain.KindText, Required: true, MaxLen: 200},
		{Name: "client", Label: "Client", Kind: domain.KindText, MaxLen: 100},
		{Name: "summary", Label: "Summary", Kind: domain.KindText, Required: true, MaxLen: 300},
		{Name: "description", Label: "Description", Kind: domain.KindLongText},
		{Name: "coverImage", Label: "Cover image", Kind: domain.KindURL},
		{Name: "url", Label: "Live URL", Kind: domain.KindURL},
		{Name: "technologies", Label: "Technologies", Kind: domain.KindList, Hint: "comma separated"},
		{Name: "featured", Label: "Featured", Kind: domain.KindBool},
		{Name: "published", Label: "Published", Kind: domain.KindBool},
	}},
	Columns: []listview.Column[domain.Project]{
		{Key: "title", Title: "Title", Width: 26, SortField: "title", Cell: func(p domain.Project) string { return p.Title }},
		{Key: "client", Title: "Client", Width: 16, SortField: "client", Cell: func(p domain.Project) string { return p.Client }},
		{Key: "technologies", Title: "Stack", Width: 22, Hideable: true, Cell: func(p domain.Project) string { return display.JoinList(p.Technologies) }},
		{Key: "featured", Title: "★", Width: 2, SortField: "featured", Cell: func(p domain.Project) string { return featuredCell(p) }},
		{Key: "status", Title: "Status", Width: 12, SortField: "published", Cell: func(p domain.Project) string { return statusCell(p) }},
	},
	Facets:      []listview.Facet{listview.FacetPublished, listview.FacetFeatured},
	Paging:      LocalPaging,
	DefaultSort: newestFirst,
	Label:       func(p domain.Project) string { return p.Title },
})

var Hero = Bind(Spec[domain.HeroSection]{
	Name:     "hero",
	Singular: "Hero section",
	Plural:   "Hero sections",
	Aliases:  []string{"heroes", "hero-sections"},
	Schema: domain.Schema{Fields: []domain.Field{
		{Name: "page", Label: "Page", Kind: domain.KindText, Required: true, MaxLen: 50, Hint: "home, about, services..."},
		{Name: "title", Label: "Title", Kind: domain.KindText, Required: true, MaxLen: 200},
		{Name: "subtitle", Label: "Subtitle", Kind: domain.KindText, MaxLen: 300},
		{Name: "ctaText", Label: "CTA text", Kind: domain.KindText, MaxLen: 50},
		{Name: "ctaLink", Label: "CTA link", Kind: domain.KindURL},
		{Name: "backgroundImage", Label: "Background image", Kind: domain.KindURL},
		{Name: "active", Label: "Active", Kind: domain.KindBool},
	}},
	Columns: []listview.Column[domain.HeroSection]{
		{Key: "page", Title: "Page", Width: 12, SortField: "page", Cell: func(h domain.HeroSection) string { return h.Page }},
		{Key: "title", Title: "Title", Width: 32, SortField: "title", Cell: func(h domain.HeroSection) string { return h.Title }},
		{Key: "cta", Title: "CTA", Width: 16, Hideable: true, Cell: func(h domain.HeroSection) string { return h.CTAText }},
		{Key: "active", Title: "Active", Width: 6, SortField: "active", Cell: func(h domain.HeroSection) string { return display.YesNo(h.Active) }},
	},
	Facets:      []listview.Facet{listview.FacetPublished},
	Paging:      LocalPaging,
	DefaultSort: listview.Sort{Field: "page"},
	Label:       func(h domain.HeroSection) string { return h.Page + ": " + h.Title },
})

var Users = Bind(Spec[domain.User]{
	Name:     "users",
	Singular: "User",
	Plural:   "Users",
	Aliases:  []string{"user", "accounts"},
	Schema: domain.Schema{Fields: []domain.Field{
		{Name: "name", Label: "Name", Kind: domain.KindText, Required: true, MaxLen: 100},
		{Name: "email", Label: "Email", Kind: domain.KindEmail, Required: true},
		{Name: "role", Label: "Role", Kind: domain.KindEnum, Required: true, Options: []string{
			string(domain.RoleAdmin), string(domain.RoleEditor), string(domain.RoleViewer),
		}},
		{Name: "active", Label: "Active", Kind: domain.KindBool},
	}},
	Columns: []listview.Column[domain.User]{
		{Key: "name", Title: "Name", Width: 22, SortField: "name", Cell: func(u domain.User) string { return u.Name }},
		{Key: "email", Title: "Email", Width: 28, SortField: "email", Cell: func(u domain.User) string { return u.Email }},
		{Key: "role", Title: "Role", Width: 8, SortField: "role", Cell: func(u domain.User) string { return string(u.Role) }},
		{Key: "active", Title: "Active", Width: 6, SortField: "active", Cell: func(u domain.User) string { return display.YesNo(u.Active) }},
		{Key: "lastLogin", Title: "Last login", Width: 16, Hideable: true, SortField: "lastLoginAt", Cell: func(u domain.User) string { return display.FormatDateTime(u.LastLoginAt) }},
	},
	Paging:      LocalPaging,
	DefaultSort: byName,
	Label:       func(u domain.User) string { return u.Name },
})
