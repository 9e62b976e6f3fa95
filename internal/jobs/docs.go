// Package jobs provides scheduled background tasks.
//
// The assignment sweep retries worker assignment for orders that were left
// waiting because no worker was available when their stage completed. It
// runs on a cron schedule via github.com/robfig/cron/v3.
package jobs
