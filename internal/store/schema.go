package store

// UserSchema creates the credentials table.
var UserSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
	    id       CHAR(36)     NOT NULL PRIMARY KEY,
	    username VARCHAR(191) NOT NULL UNIQUE,
	    password VARCHAR(255) NOT NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// SiteSchema creates the two singleton tables.  Defaults live in Go
// (site.DefaultContent, site.DefaultTheme), not in the DDL.
var SiteSchema = []string{
	`CREATE TABLE IF NOT EXISTS site_content (
	    id                    INT  NOT NULL PRIMARY KEY,
	    hero_headline         TEXT NOT NULL,
	    hero_subtext          TEXT NOT NULL,
	    about_text            JSON NOT NULL,
	    services              JSON NOT NULL,
	    leadership_title      TEXT NOT NULL,
	    leadership_subtitle   TEXT NOT NULL,
	    leadership_role       TEXT NOT NULL,
	    expertise_title       TEXT NOT NULL,
	    expertise_description TEXT NOT NULL,
	    transit_title         TEXT NOT NULL,
	    contact_title         TEXT NOT NULL,
	    footer_description    TEXT NOT NULL,
	    logo_url              TEXT NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS site_theme (
	    id            INT          NOT NULL PRIMARY KEY,
	    primary_color VARCHAR(64)  NOT NULL,
	    accent_color  VARCHAR(64)  NOT NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// ResourceSchema creates the resource-card table.
var ResourceSchema = []string{
	`CREATE TABLE IF NOT EXISTS resources (
	    id          BIGINT       NOT NULL AUTO_INCREMENT PRIMARY KEY,
	    title       TEXT         NOT NULL,
	    description TEXT         NOT NULL,
	    image_url   TEXT         NULL,
	    link_url    TEXT         NULL,
	    link_text   VARCHAR(255) NULL DEFAULT 'Learn More'
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}
