// Package http implements the HTTP request handlers for the survey
// ingestion service. Handlers stay thin: parse and validate the request,
// call the service layer, transform errors into the structured API error
// responses, render JSON. All business logic lives in the services and
// report packages.
package http
