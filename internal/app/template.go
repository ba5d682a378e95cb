package app

import (
	"fmt"
	"strings"

	"codeforge/pkg/domain"
)

// templateManifest is the deterministic local fallback generator. Its output
// is byte-stable for equal inputs: repeated calls with the same request
// produce identical manifests.
func templateManifest(req domain.GenerationRequest) domain.ProjectManifest {
	if strings.Contains(strings.ToLower(req.ProjectType), "react") {
		return reactTemplate(req)
	}
	return readmeTemplate(req)
}

// projectSlug derives a deterministic package name from the project type:
// lowercased, whitespace collapsed to hyphens, suffixed with "-project".
func projectSlug(projectType string) string {
	slug := strings.ToLower(strings.TrimSpace(projectType))
	slug = strings.Join(strings.Fields(slug), "-")
	if slug == "" {
		slug = "generated"
	}
	return slug + "-project"
}

func reactTemplate(req domain.GenerationRequest) domain.ProjectManifest {
	name := projectSlug(req.ProjectType)
	return domain.ProjectManifest{
		ProjectName: name,
		Description: fmt.Sprintf("Minimal React application generated for: %s", req.Prompt),
		Files: []domain.ProjectFile{
			{
				Path: "package.json",
				Content: fmt.Sprintf(`{
  "name": %q,
  "version": "0.1.0",
  "private": true,
  "dependencies": {
    "react": "^18.2.0",
    "react-dom": "^18.2.0",
    "react-scripts": "5.0.1"
  },
  "scripts": {
    "start": "react-scripts start",
    "build": "react-scripts build",
    "test": "react-scripts test"
  }
}
`, name),
			},
			{
				Path: "public/index.html",
				Content: fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>%s</title>
  </head>
  <body>
    <div id="root"></div>
  </body>
</html>
`, name),
			},
			{
				Path: "src/index.js",
				Content: `import React from 'react';
import ReactDOM from 'react-dom/client';
import App from './App';

const root = ReactDOM.createRoot(document.getElementById('root'));
root.render(
  <React.StrictMode>
    <App />
  </React.StrictMode>
);
`,
			},
			{
				Path: "src/App.js",
				Content: fmt.Sprintf(`import './App.css';

function App() {
  return (
    <div className="App">
      <h1>%s</h1>
      <p>Generated from prompt: %s</p>
    </div>
  );
}

export default App;
`, name, req.Prompt),
			},
			{
				Path: "src/App.css",
				Content: `.App {
  max-width: 640px;
  margin: 4rem auto;
  font-family: sans-serif;
  text-align: center;
}
`,
			},
			{
				Path: "README.md",
				Content: fmt.Sprintf(`# %s

Minimal React application generated for the prompt:

> %s

## Getting started

`+"```"+`
npm install
npm start
`+"```"+`
`, name, req.Prompt),
			},
		},
		Instructions: "Run `npm install` and then `npm start` to launch the development server.",
	}
}

func readmeTemplate(req domain.GenerationRequest) domain.ProjectManifest {
	name := projectSlug(req.ProjectType)
	projectType := strings.TrimSpace(req.ProjectType)
	if projectType == "" {
		projectType = "generic"
	}
	return domain.ProjectManifest{
		ProjectName: name,
		Description: fmt.Sprintf("%s project generated for: %s", projectType, req.Prompt),
		Files: []domain.ProjectFile{
			{
				Path: "README.md",
				Content: fmt.Sprintf(`# %s

Project type: %s
Language: %s

Generated for the prompt:

> %s

Consult the standard %s tooling documentation to scaffold and build this project.
`, name, projectType, req.Language, req.Prompt, req.Language),
			},
		},
		Instructions: fmt.Sprintf("Consult the standard %s tooling documentation to scaffold and build this project.", req.Language),
	}
}
