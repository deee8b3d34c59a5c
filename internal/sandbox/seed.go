package sandbox

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"site-admin/internal/catalog"
)

// ids are derived from the seed key so reseeding yields the same records
var seedNamespace = uuid.MustParse("6f1c2a52-4d8e-4f0b-9a57-3c1d2e8b7f10")

func seedID(resource, key string) string {
	return uuid.NewSHA1(seedNamespace, []byte(resource+"/"+key)).String()
}

type SeedOptions struct {
	// Reset removes existing records first.
	Reset bool
	Posts int
	Now   time.Time
}

// Seed writes a small sample site and returns how many records each resource got.
func Seed(ctx context.Context, store *Store, opts SeedOptions) (map[string]int, error) {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	if opts.Posts <= 0 {
		opts.Posts = 24
	}
	if opts.Reset {
		if err := store.Clear(ctx, ""); err != nil {
			return nil, err
		}
	}

	sd := &seeder{store: store, now: opts.Now, counts: map[string]int{}}

	categories := []string{"Design", "Engineering", "Company News", "Case Studies"}
	for _, name := range categories {
		sd.put(ctx, catalog.Categories.Name, name, map[string]any{
			"name":        name,
			"slug":        slugify(name),
			"description": "Articles about " + strings.ToLower(name) + ".",
		})
	}

	tags := []string{"go", "ux", "performance", "accessibility", "hiring", "cloud"}
	for _, name := range tags {
		sd.put(ctx, catalog.Tags.Name, name, map[string]any{"name": name, "slug": slugify(name)})
	}

	topics := []string{
		"Shipping a design system", "Why we rewrote the API", "Accessibility audit notes",
		"Scaling image delivery", "Our hiring process", "Lessons from a rebrand",
		"Measuring page speed", "Moving to the cloud", "Working with startups",
		"Designing for dark mode", "A week in the studio", "Retrospective: Q3 launches",
	}
	for i := range opts.Posts {
		title := topics[i%len(topics)]
		if i >= len(topics) {
			title = fmt.Sprintf("%s, part %d", title, i/len(topics)+1)
		}
		published := i%3 != 2
		post := map[string]any{
			"title":     title,
			"slug":      slugify(title),
			"excerpt":   "A short look at " + strings.ToLower(title) + ".",
			"content":   "Full article text for " + strings.ToLower(title) + ".",
			"category":  seedID(catalog.Categories.Name, categories[i%len(categories)]),
			"tags":      []string{seedID(catalog.Tags.Name, tags[i%len(tags)]), seedID(catalog.Tags.Name, tags[(i+2)%len(tags)])},
			"author":    []string{"Avery Quinn", "Sam Ortiz", "Jordan Lee"}[i%3],
			"published": published,
			"featured":  i%5 == 0,
		}
		created := opts.Now.Add(-time.Duration(opts.Posts-i) * 24 * time.Hour)
		if published {
			post["publishedAt"] = formatTime(created)
		}
		sd.putAt(ctx, catalog.Posts.Name, fmt.Sprintf("post-%02d", i), post, created)
	}

	faqs := []struct{ q, a, cat string }{
		{"How long does a typical project take?", "Most websites launch within eight to twelve weeks.", "process"},
		{"Do you offer ongoing support?", "Yes, every project includes three months of support.", "support"},
		{"How do refunds work?", "Deposits are refundable until design work begins.", "billing"},
		{"Which platforms do you build on?", "We build on modern web stacks and headless CMSs.", "process"},
		{"Can you work with our in-house team?", "Absolutely, we often embed with client teams.", "process"},
	}
	for i, f := range faqs {
		sd.put(ctx, catalog.FAQs.Name, f.q, map[string]any{
			"question": f.q, "answer": f.a, "category": f.cat, "order": i + 1, "published": i != 4,
		})
	}

	team := []struct{ name, role, platform string }{
		{"Avery Quinn", "Creative Director", "linkedin"},
		{"Sam Ortiz", "Lead Engineer", "github"},
		{"Jordan Lee", "Product Designer", "instagram"},
	}
	for i, m := range team {
		handle := slugify(m.name)
		sd.put(ctx, catalog.Team.Name, m.name, map[string]any{
			"name": m.name, "role": m.role, "bio": m.name + " leads " + strings.ToLower(m.role) + " work.",
			"email": handle + "@example.com", "order": i + 1, "published": true,
			"socialLinks": []map[string]any{
				{"platform": m.platform, "url": "https://" + m.platform + ".com/" + handle},
				{"platform": "twitter", "url": "https://twitter.com/" + handle},
			},
		})
	}

	testimonials := []struct {
		author, company, quote string
		rating                 int
	}{
		{"Riley Chen", "Northwind", "They turned a vague brief into a site our customers love.", 5},
		{"Morgan Patel", "Fabrikam", "Fast, thoughtful and easy to work with.", 5},
		{"Casey Brooks", "Contoso", "Our conversion rate doubled after the relaunch.", 4},
	}
	for i, t := range testimonials {
		sd.put(ctx, catalog.Testimonials.Name, t.author, map[string]any{
			"author": t.author, "company": t.company, "role": "Head of Marketing", "quote": t.quote,
			"rating": t.rating, "featured": i == 0, "published": i != 2,
		})
	}

	clients := []string{"Northwind", "Fabrikam", "Contoso", "Tailspin"}
	for i, name := range clients {
		sd.put(ctx, catalog.Clients.Name, name, map[string]any{
			"name": name, "website": "https://" + strings.ToLower(name) + ".example.com",
			"industry": []string{"Retail", "Manufacturing", "Finance", "Travel"}[i], "featured": i < 2, "order": i + 1,
		})
	}

	contacts := []struct{ name, subject, status string }{
		{"Dana Fox", "New website quote", "new"},
		{"Lee Park", "Partnership", "read"},
		{"Kim Hale", "Support request", "replied"},
	}
	for _, c := range contacts {
		sd.put(ctx, catalog.Contacts.Name, c.name, map[string]any{
			"name": c.name, "email": slugify(c.name) + "@example.org", "subject": c.subject,
			"message": "Hello, I would like to talk about " + strings.ToLower(c.subject) + ".", "status": c.status,
		})
	}

	services := []struct{ title, icon string }{
		{"Web Design", "design"},
		{"Development", "code"},
		{"Brand Strategy", "marketing"},
		{"Hosting", "cloud"},
	}
	for i, sv := range services {
		sd.put(ctx, catalog.Services.Name, sv.title, map[string]any{
			"title": sv.title, "slug": slugify(sv.title), "summary": sv.title + " for growing teams.",
			"icon": sv.icon, "features": []string{"Discovery", "Delivery", "Support"}, "order": i + 1, "published": true,
		})
	}

	projects := []struct{ title, client string }{
		{"Northwind storefront", "Northwind"},
		{"Fabrikam intranet", "Fabrikam"},
		{"Contoso mobile banking", "Contoso"},
	}
	for i, p := range projects {
		sd.put(ctx, catalog.Projects.Name, p.title, map[string]any{
			"title": p.title, "slug": slugify(p.title), "client": p.client, "summary": "A new digital experience for " + p.client + ".",
			"technologies": []string{"Go", "React", "PostgreSQL"}, "featured": i == 0, "published": true,
		})
	}

	for i, page := range []string{"home", "about", "services"} {
		sd.put(ctx, catalog.Hero.Name, page, map[string]any{
			"page": page, "title": "Welcome to the " + page + " page", "ctaText": "Get in touch",
			"ctaLink": "https://example.com/contact", "active": i != 2,
		})
	}

	users := []struct{ name, role string }{
		{"Admin User", "admin"},
		{"Editor User", "editor"},
		{"Viewer User", "viewer"},
	}
	for _, u := range users {
		sd.put(ctx, catalog.Users.Name, u.name, map[string]any{
			"name": u.name, "email": slugify(u.name) + "@example.com", "role": u.role, "active": true,
		})
	}

	if sd.err != nil {
		return nil, sd.err
	}
	return sd.counts, nil
}

type seeder struct {
	store  *Store
	now    time.Time
	counts map[string]int
	err    error
}

func (sd *seeder) put(ctx context.Context, resource, key string, doc map[string]any) {
	// stagger timestamps so newest-first ordering is stable
	created := sd.now.Add(-time.Duration(len(sd.counts)*100+sd.counts[resource]) * time.Minute)
	sd.putAt(ctx, resource, key, doc, created)
}

func (sd *seeder) putAt(ctx context.Context, resource, key string, doc map[string]any, created time.Time) {
	if sd.err != nil {
		return
	}
	id := seedID(resource, key)
	doc["id"] = id
	doc["createdAt"] = formatTime(created)
	doc["updatedAt"] = formatTime(created)
	if err := sd.store.Put(ctx, resource, id, doc); err != nil {
		sd.err = err
		return
	}
	sd.counts[resource]++
}

func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
