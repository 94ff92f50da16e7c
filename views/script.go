package views

// consoleScript drives the dashboard fragments. Responses are sequences of
// id'd elements; each replaces the element with the same id, and notices are
// prepended to #notices.
const consoleScript = `
(function () {
  function token(el) {
    var m = document.querySelector('meta[name="csrf-token"]');
    return (el && el.dataset.csrf) || (m ? m.content : "");
  }
  function swap(text) {
    var tpl = document.createElement("template");
    tpl.innerHTML = text;
    var notices = document.getElementById("notices");
    Array.prototype.slice.call(tpl.content.children).forEach(function (node) {
      if (node.hasAttribute("data-notice")) {
        if (notices) notices.prepend(node);
        setTimeout(function () { node.remove(); }, 6000);
        return;
      }
      var old = node.id && document.getElementById(node.id);
      if (old) old.replaceWith(node);
    });
  }
  function send(method, url, body, el) {
    return fetch(url, {
      method: method,
      body: body,
      credentials: "same-origin",
      headers: { "X-CSRF-Token": token(el) }
    }).then(function (r) { return r.text(); }).then(swap);
  }
  function upload(el, files, mode) {
    if (!files || !files.length) return;
    var fd = new FormData();
    Array.prototype.forEach.call(files, function (f) { fd.append("photos", f); });
    fd.append("mode", mode);
    send("POST", el.dataset.upload, fd, el);
  }
  document.addEventListener("submit", function (e) {
    var form = e.target;
    if (!form.hasAttribute("data-fragment")) return;
    e.preventDefault();
    send("POST", form.action, new FormData(form), form).then(function () {
      if (form.hasAttribute("data-reset")) form.reset();
    });
  });
  document.addEventListener("change", function (e) {
    var el = e.target;
    if (!el.dataset || !el.dataset.upload) return;
    upload(el, el.files, "select");
    el.value = "";
  });
  document.addEventListener("click", function (e) {
    var el = e.target.closest("[data-delete],[data-load]");
    if (!el) return;
    if (el.dataset.load) {
      send("GET", el.dataset.load, null, el);
      return;
    }
    var url = el.dataset.delete;
    if (el.dataset.confirm) {
      if (!window.confirm(el.dataset.confirm)) return;
      url += "?confirm=yes";
    }
    send("DELETE", url, null, el);
  });
  document.addEventListener("dragover", function (e) {
    if (e.target.closest("[data-upload]")) e.preventDefault();
  });
  document.addEventListener("drop", function (e) {
    var el = e.target.closest("[data-upload]");
    if (!el) return;
    e.preventDefault();
    upload(el, e.dataTransfer.files, "drop");
  });
  document.querySelectorAll("[data-autoload]").forEach(function (el) {
    send("GET", el.dataset.autoload, null, el);
  });
})();
`
