/*

Package client contains basic utilities to exchange native protocol frames with compatible endpoints.

The main type in this package is CqlClient, a simple CQL client that can be used to test any CQL-compatible backend.

Please note that code in this package is intended mostly to help driver implementors test their libraries; it should
not be used in production.

*/
package client
