/*

Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension owns a single configuration record, stored under a key derived
from the extension name. The record is loaded from the genesis file once, when
the database is initialized, and later read with Load.

Not being able to get a configuration value is a critical condition for the
application. Callers are expected to surface the error and refuse to serve
requests until the database is initialized correctly.

*/
package gconf
