package domain

import "time"

// Entity is anything that can be listed in a table. Key is the row identity.
type Entity interface {
	Key() string
}

// optional capabilities used by facet filters and summary stats
type Publishable interface {
	IsPublished() bool
}

type Featurable interface {
	IsFeatured() bool
}

type Categorized interface {
	CategoryKey() string
}

type Tagged interface {
	HasTag(id string) bool
}

type Stamped interface {
	Times() Timestamps
}

type Timestamps struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (t Timestamps) Times() Timestamps { return t }

type Post struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt,omitempty"`
	Content     string     `json:"content"`
	CoverImage  string     `json:"coverImage,omitempty"`
	Category    string     `json:"category,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Author      string     `json:"author,omitempty"`
	Published   bool       `json:"published"`
	Featured    bool       `json:"featured"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	Timestamps
}

func (p Post) Key() string         { return p.ID }
func (p Post) IsPublished() bool   { return p.Published }
func (p Post) IsFeatured() bool    { return p.Featured }
func (p Post) CategoryKey() string { return p.Category }

func (p Post) HasTag(id string) bool {
	for _, t := range p.Tags {
		if t == id {
			return true
		}
	}
	return false
}

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	PostCount   int    `json:"postCount"`
	Timestamps
}

func (c Category) Key() string { return c.ID }

type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
	Timestamps
}

func (t Tag) Key() string { return t.ID }

type Client struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Logo     string `json:"logo,omitempty"`
	Website  string `json:"website,omitempty"`
	Industry string `json:"industry,omitempty"`
	Featured bool   `json:"featured"`
	Order    int    `json:"order"`
	Timestamps
}

func (c Client) Key() string      { return c.ID }
func (c Client) IsFeatured() bool { return c.Featured }

type ContactStatus string

const (
	ContactNew      ContactStatus = "new"
	ContactRead     ContactStatus = "read"
	ContactReplied  ContactStatus = "replied"
	ContactArchived ContactStatus = "archived"
)

type Contact struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Email   string        `json:"email"`
	Phone   string        `json:"phone,omitempty"`
	Subject string        `json:"subject,omitempty"`
	Message string        `json:"message"`
	Status  ContactStatus `json:"status"`
	Timestamps
}

func (c Contact) Key() string { return c.ID }

type FAQ struct {
	ID        string `json:"id"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	Category  string `json:"category,omitempty"`
	Order     int    `json:"order"`
	Published bool   `json:"published"`
	Timestamps
}

func (f FAQ) Key() string       { return f.ID }
func (f FAQ) IsPublished() bool { return f.Published }

type SocialMedia struct {
	Platform Icon   `json:"platform"`
	URL      string `json:"url"`
}

type TeamMember struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Role        string        `json:"role"`
	Bio         string        `json:"bio,omitempty"`
	Photo       string        `json:"photo,omitempty"`
	Email       string        `json:"email,omitempty"`
	Order       int           `json:"order"`
	Published   bool          `json:"published"`
	SocialLinks []SocialMedia `json:"socialLinks,omitempty"`
	Timestamps
}

func (t TeamMember) Key() string       { return t.ID }
func (t TeamMember) IsPublished() bool { return t.Published }

type Testimonial struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Company   string `json:"company,omitempty"`
	Role      string `json:"role,omitempty"`
	Quote     string `json:"quote"`
	Rating    int    `json:"rating,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
	Featured  bool   `json:"featured"`
	Published bool   `json:"published"`
	Timestamps
}

func (t Testimonial) Key() string       { return t.ID }
func (t Testimonial) IsPublished() bool { return t.Published }
func (t Testimonial) IsFeatured() bool  { return t.Featured }

type Service struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Summary     string   `json:"summary"`
	Description string   `json:"description,omitempty"`
	Icon        Icon     `json:"icon,omitempty"`
	Features    []string `json:"features,omitempty"`
	Order       int      `json:"order"`
	Published   bool     `json:"published"`
	Timestamps
}

func (s Service) Key() string       { return s.ID }
func (s Service) IsPublished() bool { return s.Published }

type Project struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Slug         string   `json:"slug"`
	Client       string   `json:"client,omitempty"`
	Summary      string   `json:"summary"`
	Description  string   `json:"description,omitempty"`
	CoverImage   string   `json:"coverImage,omitempty"`
	URL          string   `json:"url,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	Featured     bool     `json:"featured"`
	Published    bool     `json:"published"`
	Timestamps
}

func (p Project) Key() string       { return p.ID }
func (p Project) IsPublished() bool { return p.Published }
func (p Project) IsFeatured() bool  { return p.Featured }

type HeroSection struct {
	ID              string `json:"id"`
	Page            string `json:"page"`
	Title           string `json:"title"`
	Subtitle        string `json:"subtitle,omitempty"`
	CTAText         string `json:"ctaText,omitempty"`
	CTALink         string `json:"ctaLink,omitempty"`
	BackgroundImage string `json:"backgroundImage,omitempty"`
	Active          bool   `json:"active"`
	Timestamps
}

func (h HeroSection) Key() string { return h.ID }

// active hero sections count as published for the summary line
func (h HeroSection) IsPublished() bool { return h.Active }

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleEditor UserRole = "editor"
	RoleViewer UserRole = "viewer"
)

type User struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        UserRole   `json:"role"`
	Active      bool       `json:"active"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	Timestamps
}

func (u User) Key() string { return u.ID }
