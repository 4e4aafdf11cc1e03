package handler

// APIV1Prefix is the canonical base path for public HTTP API v1.
const APIV1Prefix = "/api/v1"

// HeaderBoardID names the coach board a scouting fetch belongs to.
// A newer fetch on the same board supersedes the older one.
const HeaderBoardID = "X-Board-ID"
