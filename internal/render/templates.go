package render

const fragmentTemplates = `
{{define "card"}}<a class="property-card" href="/property/{{.ID}}" data-property-id="{{.ID}}">
	<img src="{{.Image}}" alt="{{.Title}}" class="property-image" onerror="this.src='{{.Placeholder}}'">
	<div class="property-info">
		<h3 class="property-title">{{.Title}}</h3>
		<p class="property-location">📍 {{orNA .City}}, {{orNA .State}}</p>
		<div class="property-details">
			<span>🛏️ {{.Bedrooms}} Beds</span>
			<span>🚿 {{.Bathrooms}} Baths</span>
			<span>📐 {{.Area}} sq ft</span>
		</div>
		<div class="property-price">{{currency .Price}}</div>
		<span class="property-status {{statusClass .Availability}}">{{.Availability}}</span>
	</div>
</a>{{end}}

{{define "listing"}}<div class="properties-grid">{{range .}}
{{.}}{{end}}
</div>{{end}}

{{define "details"}}<div class="property-details-container">
	<div class="property-details-gallery">{{range .Gallery}}
		<img src="{{.}}" alt="{{$.Title}}" onerror="this.src='{{$.Placeholder}}'">{{end}}
	</div>
	<div class="property-details-content">
		<div class="property-details-header">
			<h1>{{.Title}}</h1>
			<p class="property-location">📍 {{.Address}}, {{.City}}, {{.State}} {{.ZipCode}}</p>
			<div class="property-price">{{currency .Price}}</div>
			<span class="property-status {{statusClass .Availability}}">{{.Availability}}</span>
		</div>
		<div class="property-details-meta">
			<div class="meta-item"><strong>Property Type</strong><span>{{.Type}}</span></div>
			<div class="meta-item"><strong>Bedrooms</strong><span>{{.Bedrooms}}</span></div>
			<div class="meta-item"><strong>Bathrooms</strong><span>{{.Bathrooms}}</span></div>
			<div class="meta-item"><strong>Area</strong><span>{{.Area}} sq ft</span></div>
			<div class="meta-item"><strong>Price per sq ft</strong><span>{{currency .PerSqft}}</span></div>{{if .Parking}}
			<div class="meta-item"><strong>Parking</strong><span>{{.Parking}} spaces</span></div>{{end}}{{with .YearBuilt}}
			<div class="meta-item"><strong>Year Built</strong><span>{{.}}</span></div>{{end}}
		</div>
		<div class="property-description">
			<h2>Description</h2>
			<p>{{.Description}}</p>
		</div>
		<div class="property-features">
			<h2>Features</h2>
			{{range .Amenities}}<span class="feature-tag">{{.}}</span>{{else}}<p>No features listed</p>{{end}}
		</div>{{with .Agent.Name}}
		<div class="property-agent">
			<h2>Agent</h2>
			<p>{{.}}</p>{{with $.Agent.Phone}}
			<p>{{.}}</p>{{end}}{{with $.Agent.Email}}
			<p><a href="mailto:{{.}}">{{.}}</a></p>{{end}}
		</div>{{end}}
	</div>
</div>{{end}}

{{define "review"}}<div class="review-card">
	<div class="review-header">
		<div>
			<strong>{{.UserName}}</strong>
			<div class="review-rating">{{stars .Rating}}</div>
		</div>
		<span class="review-date">{{date .CreatedAt}}</span>
	</div>
	<p>{{.Comment}}</p>
</div>{{end}}

{{define "reviews"}}{{range .}}{{.}}
{{end}}{{end}}

{{define "management"}}{{range .}}<div class="property-management-item">
	<div class="property-management-info">
		<h3>{{.Title}}</h3>
		<p>{{orNA .City}}, {{orNA .State}} - {{currency .Price}}</p>
		<p class="property-management-meta">{{.Type}} • {{.Bedrooms}} Beds • {{.Bathrooms}} Baths</p>
	</div>
	<div class="property-management-actions">
		<a class="btn btn-primary btn-small btn-edit" href="/manage/{{.ID}}/edit" data-property-id="{{.ID}}">Edit</a>
		<a class="btn btn-danger btn-small btn-delete" href="/manage/{{.ID}}/delete" data-property-id="{{.ID}}">Delete</a>
	</div>
</div>
{{end}}{{end}}

{{define "management-empty"}}<p>{{.}} <a href="/add-property">Add a property</a></p>{{end}}

{{define "message"}}<p class="loading-spinner">{{.}}</p>{{end}}

{{define "plain-message"}}<p>{{.}}</p>{{end}}
`
