package model

import "time"

// News is an article shown on the news page.  The intro text appears in
// listings; the full body is built from the article's ordered sections.
//
// Fields:
//  ID        – primary key identifier.
//  Category  – article category label.
//  Title     – headline.
//  IntroText – teaser paragraph for listings.
//  Image     – optional image file name (nil when no image was attached).
//  AuthorID  – admin user who published the article.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type News struct {
	ID        uint64    // news.id
	Category  string    // news.category
	Title     string    // news.title
	IntroText string    // news.intro_text
	Image     *string   // news.image (nullable)
	AuthorID  uint64    // news.author_id
	CreatedAt time.Time // news.created_at
	UpdatedAt time.Time // news.updated_at
}

// NewsSection is one header+body block of an article.  Sections are
// deleted together with their article.
//
// Fields:
//  ID       – primary key identifier.
//  NewsID   – owning article.
//  Header   – section heading.
//  Body     – section text.
//  Position – zero-based order within the article.
type NewsSection struct {
	ID       uint64 // news_sections.id
	NewsID   uint64 // news_sections.news_id
	Header   string // news_sections.header
	Body     string // news_sections.body
	Position int    // news_sections.position
}

// Comment is a reader comment under a news article.
//
// Fields:
//  ID        – primary key identifier.
//  NewsID    – article the comment belongs to.
//  UserID    – author of the comment.
//  Text      – comment body.
//  CreatedAt – creation timestamp.
type Comment struct {
	ID        uint64    // comments.id
	NewsID    uint64    // comments.news_id
	UserID    uint64    // comments.user_id
	Text      string    // comments.text
	CreatedAt time.Time // comments.created_at
}
