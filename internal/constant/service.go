package constant

// SlimHeaderKey marks probe requests that Sentry transaction tracing shall ignore.
const SlimHeaderKey = "X-Slim"
