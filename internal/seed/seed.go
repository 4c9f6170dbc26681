// Package seed builds the canonical reference catalog the local store is
// created from and reconciled against.
package seed

import (
	"time"

	"course-catalog/internal/domain"
)

// SchemaVersion is stamped on every snapshot reconciled against this seed.
// Bump it whenever courses are added below.
const SchemaVersion = 2

const day = 24 * time.Hour

func avatar(initials string) string {
	return "https://api.dicebear.com/9.x/initials/svg?seed=" + initials
}

func thumb(photo string) string {
	return "https://images.unsplash.com/" + photo + "?q=80&w=1600&auto=format&fit=crop"
}

// course fills the defaults shared by every seed row.
func course(now time.Time, c domain.Course, ageDays int) domain.Course {
	if c.Instructor.Name == "" {
		c.Instructor = domain.Instructor{Name: "Staff", Avatar: avatar("SF")}
	}
	if c.Tags == nil {
		c.Tags = []string{}
	}
	if c.Badges == nil {
		c.Badges = []string{}
	}
	if c.Syllabus == nil {
		c.Syllabus = []domain.Lesson{}
	}
	if c.Language == "" {
		c.Language = "en"
	}
	c.PublishedAt = now.Add(-time.Duration(ageDays) * day).UTC()
	return c
}

// Build returns a fresh snapshot. Course ids are hand-assigned and stable;
// migrations diff on them. Only publishedAt depends on now.
func Build(now time.Time) *domain.Database {
	courses := Courses(now)
	return &domain.Database{
		Meta:    &domain.Meta{Version: SchemaVersion},
		Courses: courses,
		Users: []domain.User{
			{
				ID:        1,
				Name:      "Test User",
				Email:     "test@example.com",
				Password:  "pass123",
				Interests: []string{},
				Bio:       "",
				Avatar:    avatar("TU"),
			},
		},
		Enrollments: []domain.Enrollment{},
		Counters: domain.Counters{
			Courses:     len(courses),
			Users:       1,
			Enrollments: 0,
		},
	}
}

// Courses returns the seed course list in canonical order.
func Courses(now time.Time) []domain.Course {
	return []domain.Course{
		course(now, domain.Course{
			ID:          1,
			Title:       "React & Tailwind: From Zero to Pro",
			Category:    "Development",
			Level:       domain.LevelBeginner,
			Price:       0,
			Rating:      4.7,
			Lessons:     36,
			Duration:    "8h 30m",
			Thumbnail:   thumb("photo-1521737604893-d14cc237f11d"),
			Description: "Build modern, responsive UIs with React and TailwindCSS. Learn component patterns, hooks, and best practices.",
			Syllabus: []domain.Lesson{
				{Title: "Introduction & Setup", Content: "Project setup, CRA/Vite, Tailwind."},
				{Title: "React Fundamentals", Content: "Components, props, state, effects."},
				{Title: "Styling with Tailwind", Content: "Responsive, dark mode, patterns."},
			},
			Instructor: domain.Instructor{Name: "Ava Collins", Avatar: avatar("AC")},
			Tags:       []string{"react", "tailwind", "frontend"},
			Badges:     []string{"Free", "Beginner Friendly"},
		}, 120),
		course(now, domain.Course{
			ID:          2,
			Title:       "Data Analysis with Python",
			Category:    "Data",
			Level:       domain.LevelIntermediate,
			Price:       1999,
			Rating:      4.8,
			Lessons:     40,
			Duration:    "9h 10m",
			Thumbnail:   thumb("photo-1515879218367-8466d910aaa4"),
			Description: "Clean, transform, and visualize real-world datasets.",
			Syllabus: []domain.Lesson{
				{Title: "Pandas 101", Content: "Series, DataFrame, indexing, filtering."},
				{Title: "EDA", Content: "Groupby, stats, charts."},
			},
			Instructor: domain.Instructor{Name: "Ravi Sharma", Avatar: avatar("RS")},
			Tags:       []string{"python", "pandas", "eda"},
			Badges:     []string{"Bestseller"},
		}, 90),
		course(now, domain.Course{
			ID:          3,
			Title:       "JavaScript Mastery: ES6+ to Advanced Patterns",
			Category:    "Development",
			Level:       domain.LevelIntermediate,
			Price:       1499,
			Rating:      4.6,
			Lessons:     45,
			Duration:    "10h 00m",
			Thumbnail:   thumb("photo-1518779578993-ec3579fee39f"),
			Description: "Master modern JavaScript including async patterns, modules, tooling, and performance best practices.",
			Syllabus: []domain.Lesson{
				{Title: "Modern Syntax", Content: "ES6+, modules, bundlers."},
				{Title: "Async Deep Dive", Content: "Promises, async/await, concurrency."},
				{Title: "Patterns", Content: "Module, Observer, Factory, immutability."},
			},
			Instructor: domain.Instructor{Name: "Mina Park", Avatar: avatar("MP")},
			Tags:       []string{"javascript", "patterns", "async"},
			Badges:     []string{"Staff Pick"},
		}, 60),
		course(now, domain.Course{
			ID:          4,
			Title:       "UI/UX Design Foundations with Figma",
			Category:    "Design",
			Level:       domain.LevelBeginner,
			Price:       1299,
			Rating:      4.7,
			Lessons:     32,
			Duration:    "7h 45m",
			Thumbnail:   thumb("photo-1517694712202-14dd9538aa97"),
			Description: "Learn design principles, create wireframes, and build pixel-perfect prototypes in Figma.",
			Syllabus: []domain.Lesson{
				{Title: "Design Basics", Content: "Typography, color, layout, grids."},
				{Title: "Wireframes", Content: "Low/high fidelity, user flows."},
				{Title: "Prototyping", Content: "Interactive prototypes, handoff."},
			},
			Instructor: domain.Instructor{Name: "Ishita Rao", Avatar: avatar("IR")},
			Tags:       []string{"figma", "ui", "ux"},
			Badges:     []string{"Certificate"},
		}, 110),
		course(now, domain.Course{
			ID:          5,
			Title:       "Next.js 14 & App Router: Production Guide",
			Category:    "Development",
			Level:       domain.LevelIntermediate,
			Price:       1999,
			Rating:      4.8,
			Lessons:     38,
			Duration:    "8h 20m",
			Thumbnail:   thumb("photo-1558494949-ef010cbdcc31"),
			Description: "Build SEO-friendly, server components powered apps with routing, caching, and edge deployment.",
			Syllabus: []domain.Lesson{
				{Title: "App Router", Content: "Layouts, nested routes, metadata."},
				{Title: "Data Fetching", Content: "Server components, streaming, caching."},
				{Title: "Deployment", Content: "Edge runtime, envs, optimizations."},
			},
			Instructor: domain.Instructor{Name: "Diego Alves", Avatar: avatar("DA")},
			Tags:       []string{"nextjs", "react", "ssr"},
			Badges:     []string{"New"},
		}, 30),
		course(now, domain.Course{
			ID:          6,
			Title:       "TailwindCSS Advanced: Design Systems & Patterns",
			Category:    "Design",
			Level:       domain.LevelAdvanced,
			Price:       1499,
			Rating:      4.6,
			Lessons:     28,
			Duration:    "6h 30m",
			Thumbnail:   thumb("photo-1555066931-4365d14bab8c"),
			Description: "Create scalable design systems with Tailwind, add themes, animations, and component patterns.",
			Syllabus: []domain.Lesson{
				{Title: "Design Tokens", Content: "Colors, spacing, typography."},
				{Title: "Theming", Content: "Dark mode, CSS variables, theming APIs."},
				{Title: "Components", Content: "Accessible, reusable, animated UI."},
			},
			Instructor: domain.Instructor{Name: "Leo Hart", Avatar: avatar("LH")},
			Tags:       []string{"tailwind", "design-system", "ui"},
		}, 45),
		course(now, domain.Course{
			ID:          7,
			Title:       "Machine Learning Essentials",
			Category:    "Data",
			Level:       domain.LevelBeginner,
			Price:       2499,
			Rating:      4.5,
			Lessons:     35,
			Duration:    "9h 30m",
			Thumbnail:   thumb("photo-1504384308090-c894fdcc538d"),
			Description: "Understand ML concepts, train models, evaluate performance, and deploy simple predictors.",
			Syllabus: []domain.Lesson{
				{Title: "ML Basics", Content: "Supervised vs unsupervised, metrics."},
				{Title: "Models", Content: "Regression, trees, clustering."},
				{Title: "Deployment", Content: "Saving models, simple APIs."},
			},
			Instructor: domain.Instructor{Name: "Chen Wei", Avatar: avatar("CW")},
			Tags:       []string{"ml", "python", "sklearn"},
			Badges:     []string{"Certificate"},
		}, 70),
		course(now, domain.Course{
			ID:          8,
			Title:       "SQL for Analysts & Engineers",
			Category:    "Data",
			Level:       domain.LevelBeginner,
			Price:       999,
			Rating:      4.7,
			Lessons:     30,
			Duration:    "6h 15m",
			Thumbnail:   thumb("photo-1517433456452-f9633a875f6f"),
			Description: "Query relational databases with confidence: joins, windows, CTEs, performance, and modeling.",
			Syllabus: []domain.Lesson{
				{Title: "Core SQL", Content: "SELECT, WHERE, GROUP BY, HAVING."},
				{Title: "Joins & Windows", Content: "INNER/OUTER, window functions."},
				{Title: "CTEs & Perf", Content: "CTEs, indexes, EXPLAIN basics."},
			},
			Instructor: domain.Instructor{Name: "Nora Lee", Avatar: avatar("NL")},
			Tags:       []string{"sql", "analytics"},
		}, 150),
		course(now, domain.Course{
			ID:          9,
			Title:       "AWS Cloud Practitioner Crash Course",
			Category:    "Cloud",
			Level:       domain.LevelBeginner,
			Price:       1799,
			Rating:      4.6,
			Lessons:     26,
			Duration:    "5h 50m",
			Thumbnail:   thumb("photo-1504384308090-c894fdcc538d"),
			Description: "Learn core AWS services (EC2, S3, RDS, IAM) and best practices to prepare for certification.",
			Syllabus: []domain.Lesson{
				{Title: "Foundations", Content: "Global infra, IAM, regions, AZs."},
				{Title: "Core Services", Content: "EC2, S3, RDS, Lambda."},
				{Title: "Security & Costs", Content: "Shared responsibility, budgets."},
			},
			Instructor: domain.Instructor{Name: "Olivia Hayes", Avatar: avatar("OH")},
			Tags:       []string{"aws", "cloud"},
			Badges:     []string{"Trending"},
		}, 25),
		course(now, domain.Course{
			ID:          10,
			Title:       "Cybersecurity Fundamentals",
			Category:    "Security",
			Level:       domain.LevelBeginner,
			Price:       1599,
			Rating:      4.5,
			Lessons:     24,
			Duration:    "5h 20m",
			Thumbnail:   thumb("photo-1518770660439-4636190af475"),
			Description: "Understand threats, vulnerabilities, OWASP, secure coding basics, and practical defense.",
			Syllabus: []domain.Lesson{
				{Title: "Threats & Vulns", Content: "Phishing, XSS, SQLi, CSRF."},
				{Title: "Secure Dev", Content: "Input validation, auth, logs."},
				{Title: "Blue Team", Content: "Monitoring, patching, backups."},
			},
			Instructor: domain.Instructor{Name: "Ethan Brooks", Avatar: avatar("EB")},
			Tags:       []string{"security", "owasp"},
		}, 10),
		course(now, domain.Course{
			ID:          11,
			Title:       "Flutter Mobile Development: Zero to Store",
			Category:    "Mobile",
			Level:       domain.LevelIntermediate,
			Price:       2199,
			Rating:      4.7,
			Lessons:     42,
			Duration:    "10h 40m",
			Thumbnail:   thumb("photo-1498050108023-c5249f4df085"),
			Description: "Build high-performance cross-platform apps with Flutter, state management, and publishing.",
			Syllabus: []domain.Lesson{
				{Title: "Flutter Basics", Content: "Widgets, layouts, navigation."},
				{Title: "State", Content: "Provider/Bloc, forms, async."},
				{Title: "Ship It", Content: "Builds, store listing, updates."},
			},
			Instructor: domain.Instructor{Name: "Layla Khan", Avatar: avatar("LK")},
			Tags:       []string{"flutter", "mobile"},
		}, 75),
		course(now, domain.Course{
			ID:          12,
			Title:       "Data Structures & Algorithms in Java",
			Category:    "Development",
			Level:       domain.LevelIntermediate,
			Price:       1899,
			Rating:      4.6,
			Lessons:     48,
			Duration:    "12h 00m",
			Thumbnail:   thumb("photo-1515879218367-8466d910aaa4"),
			Description: "Ace interviews by mastering complexity analysis, arrays, stacks, queues, trees, graphs, and DP.",
			Syllabus: []domain.Lesson{
				{Title: "Time & Space", Content: "Big-O, recursion, patterns."},
				{Title: "Core DS", Content: "Lists, stacks, queues, trees, heaps."},
				{Title: "Graphs & DP", Content: "Traversal, shortest paths, DP."},
			},
			Instructor: domain.Instructor{Name: "Jason Mehta", Avatar: avatar("JM")},
			Tags:       []string{"dsa", "java", "interview"},
			Badges:     []string{"Certificate"},
		}, 200),
		// New seed courses go here with new, unique ids.
		course(now, domain.Course{
			ID:          13,
			Title:       "Rust for Backend: From Zero to API",
			Category:    "Development",
			Level:       domain.LevelIntermediate,
			Price:       1799,
			Rating:      4.6,
			Lessons:     34,
			Duration:    "8h 10m",
			Thumbnail:   thumb("photo-1555949963-ff9fe0c870eb"),
			Description: "Write safe and fast services in Rust. Actix/Axum, testing, and deployment.",
			Syllabus: []domain.Lesson{
				{Title: "Rust Basics", Content: "Ownership, borrowing, traits."},
				{Title: "Web APIs", Content: "Actix/Axum, routing, middleware."},
			},
			Instructor: domain.Instructor{Name: "Elena Petrova", Avatar: avatar("EP")},
			Tags:       []string{"rust", "backend"},
			Badges:     []string{"New"},
		}, 15),
	}
}
