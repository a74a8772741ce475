package download

// Package download runs a single video download on top of
// github.com/ytget/ytdlp/v2. A download is a Job: a handle with a
// cancellation token, a progress-event channel and a Wait method, so that
// front ends never block while bytes are transferred. Only one job runs at a
// time; there is no queue.
